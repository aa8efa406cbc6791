package entities

const (
	RoleAdmin   = 1
	RoleRegular = 2
	RoleFellow  = 3
)

// Role tiers are ordinal: a lower tier means higher privilege.
// Admin sits at tier 0 and is the only role with elevated rights.
const AdminTier = 0

type Role struct {
	ID   int    `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Tier int    `json:"tier" db:"tier"`
}

// The registry is seeded once by migrations and never changes at runtime.
var roles = map[int]Role{
	RoleAdmin:   {ID: RoleAdmin, Name: "admin", Tier: AdminTier},
	RoleRegular: {ID: RoleRegular, Name: "regular", Tier: 1},
	RoleFellow:  {ID: RoleFellow, Name: "fellow", Tier: 2},
}

func RoleByID(id int) (Role, bool) {
	r, ok := roles[id]
	return r, ok
}

func ValidRoleID(id int) bool {
	_, ok := roles[id]
	return ok
}

// Outranks reports whether r carries strictly higher privilege than other.
func (r Role) Outranks(other Role) bool {
	return r.Tier < other.Tier
}
