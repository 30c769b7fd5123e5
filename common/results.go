package common

// Note records a non-fatal degradation that happened during a job, such
// as music being skipped or a partial alignment.
type Note struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

// ProductionResult is the terminal status document of one job.
type ProductionResult struct {
	TitleID         string  `json:"titleId"`
	OutputPath      string  `json:"outputPath,omitempty"`
	Success         bool    `json:"success"`
	DurationSeconds float64 `json:"durationSeconds,omitempty"`
	FileSizeBytes   int64   `json:"fileSizeBytes,omitempty"`
	ErrorStage      string  `json:"errorStage,omitempty"`
	ErrorMessage    string  `json:"errorMessage,omitempty"`
	Notes           []Note  `json:"notes,omitempty"`
}
