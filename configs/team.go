package config

// The bookable roster is a small fixed set; it changes with the team, not at
// runtime, so it lives here rather than in the database.
var TeamMembers = []string{"miguel", "sebastian", "yannick"}

// PrimaryMember joins every intro meeting regardless of topic.
const PrimaryMember = "miguel"

var topicSpecialists = map[string][]string{
	"design":      {"sebastian"},
	"development": {"yannick"},
	"strategy":    {},
}

// IsTeamMember reports whether name is on the bookable roster.
func IsTeamMember(name string) bool {
	for _, m := range TeamMembers {
		if m == name {
			return true
		}
	}
	return false
}

// SpecialistsFor returns the members a topic pulls into the meeting. Unknown
// topics map to no specialists; the primary member still attends.
func SpecialistsFor(topic string) []string {
	return topicSpecialists[topic]
}

// EffectiveMembers derives the required set for a meeting: the primary member,
// any topic specialists, and any explicitly requested members, deduplicated in
// that order.
func EffectiveMembers(explicit []string, topic string) []string {
	seen := make(map[string]bool)
	members := make([]string, 0, len(TeamMembers))

	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		members = append(members, name)
	}

	add(PrimaryMember)
	for _, m := range SpecialistsFor(topic) {
		add(m)
	}
	for _, m := range explicit {
		add(m)
	}
	return members
}
