package checker

import (
	"path/filepath"
	"strings"
)

// DefaultSkipDirPatterns are path substrings excluded from scanning.
var DefaultSkipDirPatterns = []string{
	"/Sample/",
	"/Pods/",
	"FirebaseStorage/Tests/Integration",
	"FirebaseDynamicLinks/Tests/Integration",
	"FirebaseInAppMessaging/Tests/Integration/",
	"Example/InstanceID/App",
	"SymbolCollisionTest/",
	"/gen/",
	"CocoapodsIntegrationTest/",
	"FirebasePerformance/Tests/TestApp/",
	"cmake-build-debug/",
	"build/",
	"ObjCIntegration/",
	"FirebasePerformance/Tests/FIRPerfE2E/",
	// Firebase.h umbrella.
	"CoreOnly/Sources",
	// Module import tests.
	"SwiftPMTests",
	"ClientApp",
	// Not yet migrated.
	"Firebase/CoreDiagnostics/FIRCDLibrary/Protogen/nanopb",
	"Crashlytics/ProtoSupport",
	"Crashlytics/UnitTests/GoogleDataTransport",
	"Example/Database/",
	"Firestore",
	"GoogleUtilitiesComponents",
	"FirebasePerformance/ProtoSupport/",
}

// DefaultSkipImportPatterns are import prefixes exempt from the existence check.
var DefaultSkipImportPatterns = []string{
	"FBLPromise",
	"OCMock",
	"OCMStubRecorder",
}

// InternalModulePrefixes name the module families built from this repository.
// Angle-bracketed imports of them are rejected.
var InternalModulePrefixes = []string{
	"Firebase",
	"GoogleUtilities",
	"GoogleDataTransport",
}

// SourceExtensions are the file suffixes that get scanned.
var SourceExtensions = []string{".h", ".m", ".mm", ".c"}

const (
	publicSegment = "/Public/"

	// legacyPublicHeader lives under Public/ but is not part of the public API.
	legacyPublicHeader = "GDTCCTLibrary/Public/GDTCOREvent+GDTCCTSupport.h"
)

// PathFilter decides which discovered files are scanned.
type PathFilter struct {
	skipDirs []string
}

// NewPathFilter creates a filter from the default skip patterns plus extra ones.
func NewPathFilter(extraSkipDirs []string) *PathFilter {
	skipDirs := make([]string, 0, len(DefaultSkipDirPatterns)+len(extraSkipDirs))
	skipDirs = append(skipDirs, DefaultSkipDirPatterns...)
	skipDirs = append(skipDirs, extraSkipDirs...)

	return &PathFilter{skipDirs: skipDirs}
}

// Skip reports whether the full path contains any skip-directory pattern.
func (f *PathFilter) Skip(path string) bool {
	return containsAny(filepath.ToSlash(path), f.skipDirs)
}

// IsSourceFile reports whether a file name is a visible C-family source file.
func IsSourceFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}

	for _, ext := range SourceExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}

	return false
}

// IsPublicHeader reports whether path belongs to a module's public API.
func IsPublicHeader(path string) bool {
	slashed := filepath.ToSlash(path)

	return strings.Contains(slashed, publicSegment) && !strings.Contains(slashed, legacyPublicHeader)
}

func containsAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}

	return false
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}
