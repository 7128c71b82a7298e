package model

// AssembledTalent is one row of the assembled talent table: the resolved
// thresholds of the three checks, in check order, plus the character's skill
// level. SkillLevel is nil when the character never learned the talent.
type AssembledTalent struct {
	ID         string
	Name       string
	Attributes [3]string
	Thresholds [3]int
	SkillLevel *int
}

// Level reports the skill level and whether the talent was learned.
func (t AssembledTalent) Level() (int, bool) {
	if t.SkillLevel == nil {
		return 0, false
	}
	return *t.SkillLevel, true
}

// Job is a unit of simulation work. Stream selects the random stream so
// results do not depend on which worker picks the job up.
type Job struct {
	Stream int
	Talent AssembledTalent
}
