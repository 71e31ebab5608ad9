package applicationinfra

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"github.com/talencee/careers/pkg/errx"
	"github.com/talencee/careers/recruitment/application"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type column struct {
	field string
	label string
}

// columns maps storage columns to the request fields they come from
var columns = map[string]column{
	"name":        {"name", "Name"},
	"email":       {"email", "Email"},
	"subject":     {"subject", "Subject"},
	"message":     {"message", "Message"},
	"job_id":      {application.FieldJobReference, "Job"},
	"resume_path": {"resume", "Resume"},
}

func columnFromConstraint(constraint string) column {
	name := strings.TrimSuffix(strings.TrimPrefix(constraint, "applications_"), "_check")
	if c, ok := columns[name]; ok {
		return c
	}
	return column{field: name, label: name}
}

func notNull(c column) errx.FieldError {
	return errx.FieldError{Field: c.field, Message: c.label + " is required"}
}

func checkFailed(c column) errx.FieldError {
	return errx.FieldError{Field: c.field, Message: c.label + " is invalid"}
}

var jobMissing = errx.FieldError{Field: application.FieldJobReference, Message: "Job not found"}

// mapConstraintError translates driver constraint violations into typed
// errors. Anything else yields nil.
func mapConstraintError(err error) *errx.Error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return mapPostgres(pqErr)
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return mapSQLite(liteErr)
	}
	return nil
}

func mapPostgres(e *pq.Error) *errx.Error {
	switch e.Code {
	case "23505": // unique_violation
		return application.ErrApplicationAlreadyExists()
	case "23502": // not_null_violation
		return application.ErrPersistenceRejected(notNull(columnFromName(e.Column)))
	case "23514": // check_violation
		return application.ErrPersistenceRejected(checkFailed(columnFromConstraint(e.Constraint)))
	case "23503": // foreign_key_violation
		return application.ErrPersistenceRejected(jobMissing)
	case "22001": // string_data_right_truncation
		return application.ErrPersistenceRejected(errx.FieldError{Field: columnFromName(e.Column).field, Message: "Value is too long"})
	}
	return nil
}

func columnFromName(name string) column {
	if c, ok := columns[name]; ok {
		return c
	}
	return column{field: name, label: name}
}

// mapSQLite reads the constraint or column from messages such as
// "CHECK constraint failed: applications_name_check" and
// "NOT NULL constraint failed: applications.name".
func mapSQLite(e *sqlite.Error) *errx.Error {
	if e.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
		return nil
	}

	msg := e.Error()
	subject := ""
	if i := strings.LastIndex(msg, "failed: "); i >= 0 {
		subject = strings.TrimSpace(msg[i+len("failed: "):])
		if j := strings.IndexAny(subject, " )"); j >= 0 {
			subject = subject[:j]
		}
	}

	switch {
	case strings.Contains(msg, "UNIQUE constraint"):
		return application.ErrApplicationAlreadyExists()
	case strings.Contains(msg, "NOT NULL constraint"):
		return application.ErrPersistenceRejected(notNull(columnFromName(strings.TrimPrefix(subject, "applications."))))
	case strings.Contains(msg, "CHECK constraint"):
		return application.ErrPersistenceRejected(checkFailed(columnFromConstraint(subject)))
	case strings.Contains(msg, "FOREIGN KEY constraint"):
		return application.ErrPersistenceRejected(jobMissing)
	}
	return nil
}
