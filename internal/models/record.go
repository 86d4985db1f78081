package models

// Record is one accepted input line.
type Record struct {
	Line    int          `json:"line" yaml:"line"` // 1-based input line number
	Date    CalendarDate `json:"date" yaml:"date"`
	Payload string       `json:"payload" yaml:"payload"`
}
