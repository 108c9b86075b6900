// Package audit holds the report envelope shared by the auxiliary
// fleet collectors.
package audit

import "time"

// Report is the envelope for auxiliary command output.
type Report struct {
	Kind        string    `json:"kind" yaml:"kind"`
	Cluster     string    `json:"cluster,omitempty" yaml:"cluster,omitempty"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`
	Data        any       `json:"data" yaml:"data"`
}
