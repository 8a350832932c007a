package participant

// Level is the escalation hierarchy of participants, ordered by authority.
type Level uint

const (
	User Level = iota + 1
	Supervisor
	ServiceOwner
	DomainAdmin
)

var levelNames = map[Level]string{
	User:         "USER",
	Supervisor:   "SUPERVISOR",
	ServiceOwner: "SERVICE_OWNER",
	DomainAdmin:  "DOMAIN_ADMIN",
}

func (l Level) String() string {
	if name, found := levelNames[l]; found {
		return name
	}
	return "UNKNOWN"
}

func (l Level) IsValid() bool {
	_, found := levelNames[l]
	return found
}

// Next returns the next higher authority level. DomainAdmin has no
// successor.
func (l Level) Next() (Level, bool) {
	if !l.IsValid() || l == DomainAdmin {
		return 0, false
	}
	return l + 1, true
}
