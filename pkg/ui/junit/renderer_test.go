// pkg/ui/junit/renderer_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test JUnit XML output for CI

package junit_test

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/arthur-debert/dotf/pkg/ui/junit"
	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, buf *bytes.Buffer) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
	root := doc.SelectElement("testsuites")
	require.NotNil(t, root)
	return root
}

func TestValidationSuite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, junit.New(&buf).RenderResult(&types.ValidationReport{
		Config: "dotf.toml",
		Issues: []types.ValidationIssue{
			{Kind: types.IssueDuplicateTarget, Section: "symlinks", Subject: "~/.a", Message: "dup"},
			{Kind: types.IssueDuplicateTarget, Section: "symlinks", Subject: "~/.b", Message: "dup"},
			{Kind: types.IssueMissingScript, Section: "scripts.deps", Subject: "linux", Message: "missing"},
		},
	}))

	root := parse(t, &buf)
	assert.Equal(t, "6", root.SelectAttrValue("tests", ""))
	assert.Equal(t, "2", root.SelectAttrValue("failures", ""))

	suite := root.SelectElement("testsuite")
	require.NotNil(t, suite)
	cases := suite.SelectElements("testcase")
	require.Len(t, cases, len(types.IssueKinds))

	for _, tc := range cases {
		failure := tc.SelectElement("failure")
		switch tc.SelectAttrValue("name", "") {
		case "duplicate_target":
			require.NotNil(t, failure)
			assert.Equal(t, "2 duplicate_target issue(s)", failure.SelectAttrValue("message", ""))
		case "missing_script":
			require.NotNil(t, failure)
		default:
			assert.Nil(t, failure)
		}
	}
}

func TestLinkSuite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, junit.New(&buf).RenderResult(&types.LinkReport{
		Command: "install",
		Entries: []types.LinkEntry{
			{Section: "symlinks", Target: "~/.a", Source: "a", Outcome: types.OutcomeCreated},
			{Section: "symlinks", Target: "~/.b", Source: "b", Outcome: types.OutcomeAborted},
			{Section: "symlinks", Target: "~/.c", Source: "c", Outcome: types.OutcomeError, Error: "boom", Code: "LINK_CREATE"},
		},
	}))

	root := parse(t, &buf)
	suite := root.SelectElement("testsuite")
	assert.Equal(t, "3", suite.SelectAttrValue("tests", ""))
	assert.Equal(t, "1", suite.SelectAttrValue("failures", ""))
	assert.Equal(t, "1", suite.SelectAttrValue("skipped", ""))
}

func TestConfigSuite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, junit.New(&buf).RenderResult(&types.ConfigReport{
		Config: "~/.dotf/repo/dotf.toml",
		Issues: []types.ValidationIssue{{Kind: types.IssueMissingSource, Section: "symlinks", Subject: "~/.a", Message: "missing"}},
	}))

	root := parse(t, &buf)
	assert.Equal(t, "1", root.SelectAttrValue("failures", ""))
	assert.Equal(t, "validate ~/.dotf/repo/dotf.toml", root.SelectElement("testsuite").SelectAttrValue("name", ""))
}

func TestUnsupportedReport(t *testing.T) {
	for _, report := range []interface{}{&types.BackupListReport{}, &types.SettingsReport{}} {
		err := junit.New(&bytes.Buffer{}).RenderResult(report)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "%T", report)
	}
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, junit.New(&buf).RenderError(errors.New(errors.ErrConfigParse, "bad toml")))

	root := parse(t, &buf)
	assert.Equal(t, "1", root.SelectAttrValue("errors", ""))
	tc := root.SelectElement("testsuite").SelectElement("testcase")
	assert.Equal(t, "CONFIG_PARSE", tc.SelectElement("error").SelectAttrValue("type", ""))
}
