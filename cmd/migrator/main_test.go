package main

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
)

type versionStub struct {
	version uint
	dirty   bool
	err     error
}

func (v versionStub) Version() (uint, bool, error) {
	return v.version, v.dirty, v.err
}

func TestReportVersion(t *testing.T) {
	tests := []struct {
		name    string
		stub    versionStub
		wantErr bool
		logged  string
	}{
		{"clean", versionStub{version: 1}, false, "migration successful"},
		{"no version", versionStub{err: migrate.ErrNilVersion}, true, "failed to check migration version"},
		{"broken", versionStub{err: errors.New("connection reset")}, true, "failed to check migration version"},
		{"dirty", versionStub{version: 1, dirty: true}, true, "database is dirty"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			err := reportVersion(logger, test.stub)
			if test.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Contains(t, buf.String(), test.logged)
		})
	}
}
