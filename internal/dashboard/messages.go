package dashboard

import (
	"fmt"
	"strings"

	pkgerrors "github.com/angelmondragon/catalog-admin/pkg/errors"
	"github.com/angelmondragon/catalog-admin/pkg/spreadsheet"
	"github.com/google/uuid"
)

func singular(resource string) string {
	s := strings.TrimSuffix(resource, "s")
	if s == "" {
		return resource
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func failureMessage(resource, action string, err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return fmt.Sprintf("failed to %s %s", action, resource)
	}
	switch typed.Code() {
	case pkgerrors.CodeValidation, pkgerrors.CodePrecondition, pkgerrors.CodePartialFailure:
		return typed.Message()
	}
	return fmt.Sprintf("failed to %s %s: %s", action, resource, pkgerrors.MetadataFor(typed.Code()).PublicMessage)
}

// ExportFilename names a download, e.g. products-1f2e3d4c.xlsx.
func ExportFilename(resource string, format spreadsheet.Format) string {
	return fmt.Sprintf("%s-%s%s", resource, strings.SplitN(uuid.NewString(), "-", 2)[0], format.Extension())
}
