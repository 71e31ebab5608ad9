package kernel

import "github.com/google/uuid"

type ApplicationID string

func NewApplicationID(id string) ApplicationID { return ApplicationID(id) }
func GenerateApplicationID() ApplicationID     { return ApplicationID(uuid.NewString()) }
func (a ApplicationID) String() string         { return string(a) }
func (a ApplicationID) IsEmpty() bool          { return string(a) == "" }

type JobID string

func NewJobID(id string) JobID { return JobID(id) }
func GenerateJobID() JobID     { return JobID(uuid.NewString()) }
func (j JobID) String() string { return string(j) }
func (j JobID) IsEmpty() bool  { return string(j) == "" }

// IsWellFormed reports whether the id matches the identifier scheme. Callers
// treat malformed ids exactly like unknown ones.
func (j JobID) IsWellFormed() bool {
	_, err := uuid.Parse(string(j))
	return err == nil
}

type ContentID string

func (c ContentID) String() string { return string(c) }
