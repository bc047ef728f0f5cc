package models

// Task is one to-do entry. The to-do list lives in the session, not in the
// subject files.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Subject   string `json:"subject"`
	Completed bool   `json:"completed"`
}

// TaskList is the session-stored to-do document.
type TaskList struct {
	Tasks []Task `json:"tasks"`
}
