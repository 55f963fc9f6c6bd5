// Package junit renders validation, config, link, status and script reports
// as JUnit XML so CI systems can display dotfiles checks like test results.
package junit

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/beevik/etree"
)

// Renderer writes JUnit XML.
type Renderer struct {
	output io.Writer
}

// New creates a JUnit renderer.
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult renders reports that map onto test cases
func (r *Renderer) RenderResult(result interface{}) error {
	doc, suites := newDocument()

	switch v := result.(type) {
	case *types.ValidationReport:
		validationSuite(suites, v)
	case *types.ConfigReport:
		validationSuite(suites, &types.ValidationReport{Config: v.Config, Issues: v.Issues})
	case *types.LinkReport:
		if len(v.Issues) > 0 {
			validationSuite(suites, &types.ValidationReport{Config: v.Command, Issues: v.Issues})
		}
		linkSuite(suites, v)
	case *types.StatusReport:
		statusSuite(suites, v)
	case *types.SyncReport:
		if v.Install != nil {
			linkSuite(suites, v.Install)
		}
	case *types.ScriptReport:
		scriptSuite(suites, "scripts", []types.ScriptReport{*v})
	case *types.InstallAllReport:
		var scripts []types.ScriptReport
		if v.Deps != nil {
			scripts = append(scripts, *v.Deps)
		}
		if v.Links != nil {
			if len(v.Links.Issues) > 0 {
				validationSuite(suites, &types.ValidationReport{Config: v.Links.Command, Issues: v.Links.Issues})
			}
			linkSuite(suites, v.Links)
		}
		scriptSuite(suites, "scripts", append(scripts, v.Custom...))
	default:
		return errors.Newf(errors.ErrInvalidInput, "junit output is not available for %T", result)
	}

	return r.write(doc)
}

// RenderError renders an error as a suite with one erroring case
func (r *Renderer) RenderError(err error) error {
	doc, suites := newDocument()
	suite := newSuite(suites, "dotf")
	tc := testCase(suite, "dotf", "run")

	e := tc.CreateElement("error")
	e.CreateAttr("message", errors.Message(err))
	e.CreateAttr("type", string(errors.GetErrorCode(err)))
	e.SetText(err.Error())

	count(suites, suite, 1, 0, 1, 0)
	return r.write(doc)
}

// RenderMessage is a no-op: JUnit documents carry no free text
func (r *Renderer) RenderMessage(string) error {
	return nil
}

func (r *Renderer) write(doc *etree.Document) error {
	doc.Indent(2)
	_, err := doc.WriteTo(r.output)
	return err
}

func newDocument() (*etree.Document, *etree.Element) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	suites := doc.CreateElement("testsuites")
	suites.CreateAttr("name", "dotf")
	return doc, suites
}

func newSuite(suites *etree.Element, name string) *etree.Element {
	suite := suites.CreateElement("testsuite")
	suite.CreateAttr("name", name)
	return suite
}

func testCase(suite *etree.Element, class, name string) *etree.Element {
	tc := suite.CreateElement("testcase")
	tc.CreateAttr("classname", class)
	tc.CreateAttr("name", name)
	return tc
}

// count sets the counters on suite and adds them to the totals on suites.
func count(suites, suite *etree.Element, tests, failures, errs, skipped int) {
	suite.CreateAttr("tests", strconv.Itoa(tests))
	suite.CreateAttr("failures", strconv.Itoa(failures))
	suite.CreateAttr("errors", strconv.Itoa(errs))
	suite.CreateAttr("skipped", strconv.Itoa(skipped))

	totals := []struct {
		key string
		n   int
	}{{"tests", tests}, {"failures", failures}, {"errors", errs}}
	for _, t := range totals {
		total := t.n
		if attr := suites.SelectAttr(t.key); attr != nil {
			prev, _ := strconv.Atoi(attr.Value)
			total += prev
		}
		suites.CreateAttr(t.key, strconv.Itoa(total))
	}
}

// validationSuite has one case per rule; a rule fails when it produced issues.
func validationSuite(suites *etree.Element, rep *types.ValidationReport) {
	suite := newSuite(suites, "validate "+rep.Config)

	byKind := make(map[types.IssueKind][]types.ValidationIssue)
	for _, issue := range rep.Issues {
		byKind[issue.Kind] = append(byKind[issue.Kind], issue)
	}

	failures := 0
	for _, kind := range types.IssueKinds {
		tc := testCase(suite, "dotf.validate", string(kind))
		issues := byKind[kind]
		if len(issues) == 0 {
			continue
		}
		failures++

		lines := make([]string, 0, len(issues))
		for _, issue := range issues {
			lines = append(lines, issue.String())
		}
		f := tc.CreateElement("failure")
		f.CreateAttr("message", fmt.Sprintf("%d %s issue(s)", len(issues), kind))
		f.CreateAttr("type", string(kind))
		f.SetText(strings.Join(lines, "\n"))
	}

	count(suites, suite, len(types.IssueKinds), failures, 0, 0)
}

// linkSuite has one case per declaration.
func linkSuite(suites *etree.Element, rep *types.LinkReport) {
	suite := newSuite(suites, rep.Command)
	failures, skipped := 0, 0

	for _, e := range rep.Entries {
		tc := testCase(suite, e.Section, e.Target)
		switch e.Outcome {
		case types.OutcomeError:
			failures++
			f := tc.CreateElement("failure")
			f.CreateAttr("message", e.Error)
			f.CreateAttr("type", e.Code)
			f.SetText(fmt.Sprintf("%s -> %s: %s", e.Target, e.Source, e.Error))
		case types.OutcomeAborted, types.OutcomeSkipped:
			skipped++
			s := tc.CreateElement("skipped")
			s.CreateAttr("message", string(e.Outcome))
		}
	}

	count(suites, suite, len(rep.Entries), failures, 0, skipped)
}

// statusSuite has one case per link; anything but valid fails.
func statusSuite(suites *etree.Element, rep *types.StatusReport) {
	suite := newSuite(suites, "status "+rep.Platform)
	failures := 0

	for _, l := range rep.Links {
		tc := testCase(suite, l.Section, l.Target)
		if l.Status == types.StatusValid {
			continue
		}
		failures++
		f := tc.CreateElement("failure")
		f.CreateAttr("message", string(l.Status))
		f.CreateAttr("type", string(l.Status))
		text := fmt.Sprintf("%s -> %s is %s", l.Target, l.Source, l.Status)
		if l.Error != "" {
			text += ": " + l.Error
		}
		f.SetText(text)
	}

	count(suites, suite, len(rep.Links), failures, 0, 0)
}

// scriptSuite has one case per script run.
func scriptSuite(suites *etree.Element, name string, reports []types.ScriptReport) {
	suite := newSuite(suites, name)
	failures, skipped := 0, 0

	for _, rep := range reports {
		tc := testCase(suite, "dotf.scripts", rep.Name)
		tc.CreateAttr("time", strconv.FormatFloat(rep.Duration.Seconds(), 'f', 3, 64))
		switch {
		case rep.Skipped != "":
			skipped++
			s := tc.CreateElement("skipped")
			s.CreateAttr("message", rep.Skipped)
		case rep.Error != "":
			failures++
			f := tc.CreateElement("failure")
			f.CreateAttr("message", rep.Error)
			f.CreateAttr("type", "exit "+strconv.Itoa(rep.ExitCode))
			f.SetText(rep.Path + ": " + rep.Error)
		}
	}

	count(suites, suite, len(reports), failures, 0, skipped)
}
