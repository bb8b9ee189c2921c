package models

// Level represents a CEFR proficiency band
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// LevelOrder fixes the total order of levels, lowest first
var LevelOrder = []Level{
	LevelA1,
	LevelA2,
	LevelB1,
	LevelB2,
	LevelC1,
	LevelC2,
}

// LevelNames maps each level to its display name
var LevelNames = map[Level]string{
	LevelA1: "Beginner",
	LevelA2: "Elementary",
	LevelB1: "Intermediate",
	LevelB2: "Upper-Intermediate",
	LevelC1: "Advanced",
	LevelC2: "Proficient",
}

// ValidLevel reports whether l is one of the six level codes
func ValidLevel(l Level) bool {
	_, ok := LevelNames[l]
	return ok
}

// LevelInfo pairs a level code with its display name for list responses
type LevelInfo struct {
	Code Level  `json:"code"`
	Name string `json:"name"`
}

// LevelList returns the levels in order with their display names
func LevelList() []LevelInfo {
	list := make([]LevelInfo, 0, len(LevelOrder))
	for _, l := range LevelOrder {
		list = append(list, LevelInfo{Code: l, Name: LevelNames[l]})
	}
	return list
}
