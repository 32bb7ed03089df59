package domain

import "errors"

// ErrSnapshotNotFound is returned when a workflow name cannot be found in
// the snapshot store.
var ErrSnapshotNotFound = errors.New("workflow snapshot not found")

// ErrRunNotFound is returned when a run id cannot be found in the run store.
var ErrRunNotFound = errors.New("run not found")

// ErrNoQuestions is returned when a workflow graph contains no question
// nodes and therefore cannot be run.
var ErrNoQuestions = errors.New("workflow has no question nodes")

// ErrNameRequired is returned when saving a snapshot without a name.
var ErrNameRequired = errors.New("workflow name is required")

// ErrAnswerRequired is returned when advancing past a required question
// with an empty answer.
var ErrAnswerRequired = errors.New("answer is required")

// ErrRunCompleted is returned when answering a run that already finished.
var ErrRunCompleted = errors.New("run already completed")
