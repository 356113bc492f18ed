// Package manpage generates a roff-formatted man page for port-pulse.
//
// The man page is generated at runtime from compiled-in version
// information, keeping documentation in sync with the build.
//
// Usage:
//
//	port-pulse --man | man -l -
//	port-pulse --man > ~/.local/share/man/man1/port-pulse.1
package manpage

import (
	"fmt"
	"strings"
	"time"
)

// Generate produces a complete roff-formatted man(1) page for
// port-pulse. The version, commit, and date parameters are passed from
// the build-time linker variables so the page always reflects the
// current build.
func Generate(version, commit, date string) string {
	var b strings.Builder

	writeHeader(&b, version)
	writeName(&b)
	writeSynopsis(&b)
	writeDescription(&b)
	writeOptions(&b)
	writeKeybindings(&b)
	writeConfiguration(&b)
	writeFiles(&b)
	writeExamples(&b)
	writeEnvironment(&b)
	writeExitStatus(&b)
	writeSeeAlso(&b)
	writeAuthors(&b)
	writeBugs(&b)
	writeFooter(&b, version, commit, date)

	return b.String()
}

// roffEscape escapes special roff characters in a string.
func roffEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `-`, `\-`)
	s = strings.ReplaceAll(s, `.`, `\&.`)
	return s
}

func writeHeader(b *strings.Builder, version string) {
	month := time.Now().Format("January 2006")
	fmt.Fprintf(b, ".TH PORT-PULSE 1 \"%s\" \"port-pulse %s\" \"User Commands\"\n", month, version)
}

func writeName(b *strings.Builder) {
	b.WriteString(`.SH NAME
port\-pulse \- monitor the process behind a TCP port
`)
}

func writeSynopsis(b *strings.Builder) {
	b.WriteString(`.SH SYNOPSIS
.B port\-pulse
\fB\-port\fR \fIPORT\fR
[\fIOPTIONS\fR]
`)
}

func writeDescription(b *strings.Builder) {
	b.WriteString(`.SH DESCRIPTION
.B port\-pulse
resolves a TCP port to the PID listening on it via lsof(8), then samples
that process's CPU and memory usage.
.PP
The tool operates in two modes:
.IP \(bu 2
.B Snapshot mode
(default): Takes a single measurement and prints a two-line summary.
With \fB\-insights\fR, appends a short AI-generated health assessment.
.IP \(bu 2
.B Watch mode
(\fB\-watch\fR): Runs a live terminal dashboard that samples on a fixed
cadence, showing current, average, and peak values, color-banded
progress bars, and sparkline trends over the last minute of samples.
The session ends when the user quits or the watched process exits.
`)
}

func writeOptions(b *strings.Builder) {
	b.WriteString(`.SH OPTIONS
`)

	flags := []struct {
		flag string
		arg  string
		desc string
	}{
		{"port, \\-p", "PORT", "TCP port to watch. Required. The first PID reported by lsof(8) as listening on the port is monitored."},
		{"watch, \\-w", "", "Run the live dashboard instead of a one-shot snapshot. Requires an interactive terminal."},
		{"interval, \\-i", "N", "Seconds between samples in watch mode. Default: 1. When a sampling cycle overruns the interval, the next cycle starts immediately."},
		{"insights", "", "Include an AI health assessment in the snapshot. Requires the API key environment variable named in the configuration."},
		{"config", "PATH", "Path to the YAML configuration file. Default: ~/.config/port\\-pulse/config.yaml."},
		{"verbose", "", "Enable verbose (debug-level) logging."},
		{"man", "", "Print this man page to stdout in roff format. Pipe to man(1) for formatted viewing: \\fBport\\-pulse \\-man | man \\-l \\-\\fR."},
		{"version", "", "Print the version, commit hash, and build date, then exit."},
	}

	for _, f := range flags {
		b.WriteString(".TP\n")
		if f.arg != "" {
			fmt.Fprintf(b, ".BR \\-%s \" \\fI%s\\fR\"\n", f.flag, f.arg)
		} else {
			fmt.Fprintf(b, ".B \\-%s\n", f.flag)
		}
		b.WriteString(f.desc + "\n")
	}
}

func writeKeybindings(b *strings.Builder) {
	b.WriteString(`.SH KEYBINDINGS
The watch dashboard is read-only; its only interaction is leaving it.
.TP
.B q, c, Ctrl+C
Quit the dashboard and restore the terminal. A measurement already in
flight is allowed to finish and is discarded.
`)
}

func writeConfiguration(b *strings.Builder) {
	b.WriteString(`.SH CONFIGURATION
Configuration is read from a YAML file at
.B ~/.config/port\-pulse/config.yaml
by default, or from the path specified with \fB\-config\fR. A missing
file is not an error; defaults apply.
.SS sampling
.TP
.B settle_interval
Pause between the two CPU-time reads of a measurement (e.g. "200ms").
Default: "200ms".
.TP
.B cpu_scale
Upper clamp for CPU percentages: "cores" (core count x 100, default) or
"single" (100 regardless of core count).
.SS display
.TP
.B memory_scale_mb
Memory reading, in decimal megabytes, at which the dashboard memory bar
saturates. Default: 2048.
.SS insights
.TP
.B enabled
Request an AI health assessment with every snapshot. Default: false.
.TP
.B model
Generative model identifier. Default: "gemini\-1.5\-flash".
.TP
.B api_key_env
Environment variable holding the API key. Default: GEMINI_API_KEY.
.SS logging
.TP
.B log_file
Path for log output in watch mode, where the dashboard owns the
terminal. Default: ~/.local/log/port\-pulse.log.
`)
}

func writeFiles(b *strings.Builder) {
	b.WriteString(`.SH FILES
.TP
.B ~/.config/port\-pulse/config.yaml
Default configuration file.
.TP
.B ~/.local/log/port\-pulse.log
Default log file for watch mode.
`)
}

func writeExamples(b *strings.Builder) {
	b.WriteString(`.SH EXAMPLES
.TP
Snapshot the process listening on port 8080:
.B port\-pulse \-port 8080
.TP
Watch it live, sampling every 2 seconds:
.B port\-pulse \-p 8080 \-w \-i 2
.TP
Snapshot with an AI health assessment:
.B port\-pulse \-port 8080 \-insights
.TP
View this man page formatted:
.B port\-pulse \-man | man \-l \-
`)
}

func writeEnvironment(b *strings.Builder) {
	b.WriteString(`.SH ENVIRONMENT
.TP
.B GEMINI_API_KEY
API key for the insight assessment (the variable name is configurable
via \fBapi_key_env\fR). When unset, snapshots fall back to plain output.
`)
}

func writeExitStatus(b *strings.Builder) {
	b.WriteString(`.SH EXIT STATUS
.TP
.B 0
Success, including a user quit from watch mode.
.TP
.B 1
Failure: no listener on the port, the watched process exited,
configuration errors, or sampling errors in snapshot mode.
`)
}

func writeSeeAlso(b *strings.Builder) {
	b.WriteString(`.SH SEE ALSO
.BR lsof (8),
.BR top (1),
.BR ps (1),
.BR man (1)
`)
}

func writeAuthors(b *strings.Builder) {
	b.WriteString(`.SH AUTHORS
The tinyland lab crew.
`)
}

func writeBugs(b *strings.Builder) {
	b.WriteString(`.SH BUGS
Report issues at the project repository:
.I https://gitlab.com/tinyland/lab/port\-pulse
`)
}

func writeFooter(b *strings.Builder, version, commit, date string) {
	fmt.Fprintf(b, ".SH VERSION\nport\\-pulse %s (commit %s, built %s)\n",
		roffEscape(version), roffEscape(commit), roffEscape(date))
}
