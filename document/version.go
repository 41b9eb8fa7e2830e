package document

import (
	"fmt"
	"strconv"
	"strings"
)

const initialVersion = "1.0"

// codePrefixes maps each document type to the 3-letter prefix used in
// auto-generated document codes. Unknown types fall back to DOC.
var codePrefixes = map[DocumentType]string{
	TypePolicy:      "POL",
	TypeProcedure:   "PRO",
	TypeInstruction: "INS",
	TypeManual:      "MAN",
	TypeRecord:      "REG",
	TypeForm:        "FOR",
	TypeChecklist:   "CHK",
	TypePlan:        "PLA",
	TypeReport:      "REP",
	TypeCertificate: "CER",
	TypeContract:    "CON",
	TypeMinutes:     "ACT",
	TypeOther:       "DOC",
}

func codePrefix(docType DocumentType) string {
	if prefix, ok := codePrefixes[docType]; ok {
		return prefix
	}
	return "DOC"
}

// formatCode builds a document code like PRO-25-001 from the type prefix,
// the 2-digit year and a per-tenant sequence number.
func formatCode(docType DocumentType, year, seq int) string {
	return fmt.Sprintf("%s-%02d-%03d", codePrefix(docType), year%100, seq)
}

// isMinorChange reports whether the content change counts as minor: the
// absolute character-length delta is under 20% of the old content length.
// An empty previous content always classifies as major.
func isMinorChange(oldContent, newContent string) bool {
	oldLen := len(oldContent)
	if oldLen == 0 {
		return false
	}
	delta := len(newContent) - oldLen
	if delta < 0 {
		delta = -delta
	}
	return float64(delta) < 0.2*float64(oldLen)
}

func parseVersion(version string) (major, minor int) {
	parts := strings.SplitN(version, ".", 2)
	major, _ = strconv.Atoi(parts[0])
	if len(parts) > 1 {
		minor, _ = strconv.Atoi(parts[1])
	}
	return major, minor
}

// nextVersion bumps the dotted major.minor identifier: minor changes
// increment the minor number, everything else increments major and
// resets minor to 0.
func nextVersion(current string, minor bool) string {
	maj, min := parseVersion(current)
	if minor {
		return fmt.Sprintf("%d.%d", maj, min+1)
	}
	return fmt.Sprintf("%d.0", maj+1)
}
