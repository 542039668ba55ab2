package version

import (
	"runtime"
	rdebug "runtime/debug"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GitCommit       string
	GitBranch       string
	GitSummary      string
	BuildDate       string
	AppVersion      string
	ChiVersion      = depVersion("go-chi/chi")
	LipglossVersion = depVersion("charmbracelet/lipgloss")
	GoVersion       = runtime.Version()
)

type Version struct {
	GitCommit       string `json:"git_commit"`
	GitBranch       string `json:"git_branch"`
	GitSummary      string `json:"git_summary"`
	BuildDate       string `json:"build_date"`
	AppVersion      string `json:"app_version"`
	GoVersion       string `json:"go_version"`
	ChiVersion      string `json:"chi_version"`
	LipglossVersion string `json:"lipgloss_version"`
}

func Current() Version {
	return Version{
		GitBranch:       GitBranch,
		GitCommit:       GitCommit,
		GitSummary:      GitSummary,
		BuildDate:       BuildDate,
		AppVersion:      AppVersion,
		GoVersion:       GoVersion,
		ChiVersion:      ChiVersion,
		LipglossVersion: LipglossVersion,
	}
}

func ExportBuildInfoMetric() {
	buildInfo := promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "rackview_build_info",
			Help: "A metric with a constant '1' value, labeled by branch, commit, summary, builddate, version, Go version from which rackview was built.",
		},
		[]string{"branch", "commit", "summary", "builddate", "version", "goversion"},
	)

	buildInfo.WithLabelValues(GitBranch, GitCommit, GitSummary, BuildDate, AppVersion, GoVersion).Set(1)
}

// depVersion returns the version of the first module dependency with path in its
// module path, empty when build info is unavailable.
func depVersion(path string) string {
	buildInfo, ok := rdebug.ReadBuildInfo()
	if !ok {
		return ""
	}

	for _, d := range buildInfo.Deps {
		if strings.Contains(d.Path, path) {
			return d.Version
		}
	}

	return ""
}
