package validate

import "fmt"

// Level is the severity of an [Issue].
type Level string

// Issue levels.
const (
	LevelError Level = "error"
	LevelWarn  Level = "warn"
)

// Issue is one problem found in a document.
type Issue struct {
	Level   Level  `json:"level" bson:"level"`
	Path    string `json:"path" bson:"path"`
	Message string `json:"message" bson:"message"`
}

// String formats the issue as "level path: message".
func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s", i.Level, i.Path, i.Message)
}

// IsError reports whether the issue blocks rendering.
func (i Issue) IsError() bool { return i.Level == LevelError }

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, i := range issues {
		if i.IsError() {
			return true
		}
	}
	return false
}

// Count returns the number of errors and warnings in issues.
func Count(issues []Issue) (errors, warnings int) {
	for _, i := range issues {
		switch i.Level {
		case LevelError:
			errors++
		case LevelWarn:
			warnings++
		}
	}
	return errors, warnings
}

// Filter returns the issues at the given level, in order.
func Filter(issues []Issue, level Level) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Level == level {
			out = append(out, i)
		}
	}
	return out
}
