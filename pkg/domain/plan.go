package domain

// PlanID identifies a subscription plan in the catalog.
type PlanID string

const (
	PlanEssential PlanID = "essential"
	PlanPlus      PlanID = "plus"
	PlanPro       PlanID = "pro"
)

// Plan describes what a subscription entitles its owner to.
type Plan struct {
	ID   PlanID
	Name string
	// ScanLimit is the number of completed scans allowed per billing period.
	ScanLimit int
}

//nolint: gochecknoglobals
var plans = map[PlanID]Plan{
	PlanEssential: {ID: PlanEssential, Name: "Essential", ScanLimit: 5},
	PlanPlus:      {ID: PlanPlus, Name: "Plus", ScanLimit: 10},
	PlanPro:       {ID: PlanPro, Name: "Pro", ScanLimit: 50},
}

// PlanByID looks up a plan in the catalog.
func PlanByID(id PlanID) (Plan, bool) {
	p, ok := plans[id]

	return p, ok
}
