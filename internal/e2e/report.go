package e2e

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result 单个场景的结果
type Result struct {
	Suite    string
	Scenario string
	Status   Status
	Err      error
	Duration time.Duration
}

// Report 一次运行的全部结果
type Report struct {
	Results []Result
}

func (r *Report) add(res ...Result) { r.Results = append(r.Results, res...) }

func (r *Report) count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

func (r *Report) Passed() int  { return r.count(StatusPassed) }
func (r *Report) Failed() int  { return r.count(StatusFailed) }
func (r *Report) Skipped() int { return r.count(StatusSkipped) }
func (r *Report) OK() bool     { return r.Failed() == 0 }

// Find 按套件和场景名查找
func (r *Report) Find(suite, scenario string) (Result, bool) {
	for _, res := range r.Results {
		if res.Suite == suite && res.Scenario == scenario {
			return res, true
		}
	}
	return Result{}, false
}

var (
	stylePass  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8ec07c"))
	styleFail  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fb4934"))
	styleSkip  = lipgloss.NewStyle().Foreground(lipgloss.Color("#fabd2f"))
	styleSuite = lipgloss.NewStyle().Bold(true)
)

// Write 以 mocha 风格输出报告
func (r *Report) Write(w io.Writer) error {
	var b strings.Builder
	suite := ""
	for _, res := range r.Results {
		if res.Suite != suite {
			suite = res.Suite
			b.WriteString("\n" + styleSuite.Render(suite) + "\n")
		}
		switch res.Status {
		case StatusPassed:
			fmt.Fprintf(&b, "  %s %s (%s)\n", stylePass.Render("✓"), res.Scenario, res.Duration.Round(time.Millisecond))
		case StatusSkipped:
			fmt.Fprintf(&b, "  %s %s\n", styleSkip.Render("-"), res.Scenario)
		default:
			fmt.Fprintf(&b, "  %s %s\n", styleFail.Render("✗"), res.Scenario)
			fmt.Fprintf(&b, "      %s\n", styleFail.Render(res.Err.Error()))
		}
	}
	fmt.Fprintf(&b, "\n%d passing, %d failing, %d pending\n", r.Passed(), r.Failed(), r.Skipped())
	_, err := io.WriteString(w, b.String())
	return err
}
