package ingest

import "github.com/MutabPato/interlinker-tool/pkg/mapreduce"

// Job is one URL queued for an ingest worker.
type Job struct {
	URL string
}

// ResultOutput is the per-URL entry in the command's final report.
type ResultOutput struct {
	URL       string `yaml:"url" json:"url"`
	Status    string `yaml:"status" json:"status"`
	Error     string `yaml:"error,omitempty" json:"error,omitempty"`
	ErrorType string `yaml:"error_type,omitempty" json:"error_type,omitempty"`
}

// Stats summarizes one ingest run.
type Stats struct {
	TotalURLs        int                 `yaml:"total_urls" json:"total_urls"`
	Successful       int                 `yaml:"successful" json:"successful"`
	Failed           int                 `yaml:"failed" json:"failed"`
	TotalTimeSeconds float64             `yaml:"total_time_seconds" json:"total_time_seconds"`
	TopKeywords      []mapreduce.Keyword `yaml:"top_keywords,omitempty" json:"top_keywords,omitempty"`
}

// FinalOutput is the structure printed to stdout when the run completes.
type FinalOutput struct {
	Status       string         `yaml:"status" json:"status"`
	CorpusDir    string         `yaml:"corpus_dir" json:"corpus_dir"`
	ManifestPath string         `yaml:"manifest_path,omitempty" json:"manifest_path,omitempty"`
	RunID        string         `yaml:"run_id,omitempty" json:"run_id,omitempty"`
	Results      []ResultOutput `yaml:"results" json:"results"`
	Stats        Stats          `yaml:"stats" json:"stats"`
}
