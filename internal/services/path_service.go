package services

import (
	"fmt"
	"strings"

	"github.com/deploymenttheory/go-hfsplus/internal/interfaces"
	"github.com/deploymenttheory/go-hfsplus/internal/names"
	"github.com/deploymenttheory/go-hfsplus/internal/types"
)

// RecordPath reconstructs the absolute POSIX path of a catalog node by
// walking parent-thread records up to the root. Names come out in display
// form ('/' shown as ':'). Fails when any parent-thread lookup fails,
// which also covers identifiers not reachable from the root.
func RecordPath(engine interfaces.CatalogEngine, cnid types.CNID) (string, error) {
	if engine == nil {
		return "", fmt.Errorf("catalog engine cannot be nil")
	}

	var elements []types.Unistr255
	for cnid != types.CNIDRootFolder {
		thread, err := engine.FindParentThread(cnid)
		if err != nil {
			return "", fmt.Errorf("parent thread of CNID %d: %w", cnid, err)
		}
		elements = append(elements, thread.Name)
		cnid = thread.ParentCNID
	}

	if len(elements) == 0 {
		return "/", nil
	}

	var sb strings.Builder
	for i := len(elements) - 1; i >= 0; i-- {
		segment, err := names.ToPosixSegment(elements[i])
		if err != nil {
			return "", fmt.Errorf("converting path element: %w", err)
		}
		sb.WriteByte('/')
		sb.WriteString(segment)
	}
	return sb.String(), nil
}
