package global

import (
	"github.com/safedocs/doc-audit-service/pkg/fileurl"
)

var (
	// ROOT is the directory of the running executable.
	ROOT string
	Name string = "Doc Audit Service"
)

func init() {
	ROOT = fileurl.GetExePath() + "/"
}
