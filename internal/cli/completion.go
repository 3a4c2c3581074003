package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// Every generator reads flagRegistry, so a new flag only needs an entry there.
type FlagCompletion struct {
	Long      string   // long flag name without "--" (e.g., "size")
	Short     string   // short flag without "-" (e.g., "n")
	Help      string   // description text
	Values    []string // suggested completion values (nil = boolean/no suggestions)
	ValueName string   // label for the value in zsh (e.g., "number", "duration")
	IsFile    bool     // true if the flag takes a file path
	Section   string   // fish section the flag is listed under
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message", Section: "Help and version"},
	{Long: "version", Short: "V", Help: "Show version information", Section: "Help and version"},
	{Long: "size", Short: "n", Help: "Length of the generated sequence", Values: []string{"1000", "1000000", "10000000", "100000000"}, ValueName: "number", Section: "Workload"},
	{Long: "threads", Short: "t", Help: "Worker count or comma-separated list", Values: []string{"1", "2", "4", "8", "1,2,4,8"}, ValueName: "workers", Section: "Workload"},
	{Long: "key", Short: "k", Help: "Key searched for", ValueName: "number", Section: "Workload"},
	{Long: "seed", Help: "Generator seed (0 derives one from the clock)", ValueName: "number", Section: "Workload"},
	{Long: "max", Help: "Exclusive upper bound of generated values", Values: []string{"10", "100", "1000"}, ValueName: "number", Section: "Workload"},
	{Long: "op", Help: "Operations to benchmark", Values: []string{"all", "sum", "search"}, ValueName: "operation", Section: "Workload"},
	{Long: "short-circuit", Help: "Stop search workers once the key is found", Section: "Workload"},
	{Long: "repeat", Help: "Timed runs per task", Values: []string{"1", "3", "5", "10"}, ValueName: "count", Section: "Workload"},
	{Long: "timeout", Help: "Maximum execution time", Values: []string{"10s", "1m", "5m", "10m"}, ValueName: "duration", Section: "Workload"},
	{Long: "interactive", Short: "i", Help: "Start the interactive prompt", Section: "Modes"},
	{Long: "tui", Help: "Start the terminal form", Section: "Modes"},
	{Long: "verbose", Short: "v", Help: "Verbose output", Section: "Output options"},
	{Long: "details", Short: "d", Help: "Show per-partition details", Section: "Output options"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts", Section: "Output options"},
	{Long: "no-color", Help: "Disable colored output", Section: "Output options"},
	{Long: "metrics", Help: "Print Prometheus metrics of the run", Section: "Output options"},
	{Long: "log-level", Help: "Diagnostic log level", Values: []string{"debug", "info", "warn", "error", "disabled"}, ValueName: "level", Section: "Output options"},
	{Long: "output", Short: "o", Help: "Report file path", IsFile: true, ValueName: "file", Section: "Output options"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell", Section: "Completion"},
}

// fishSections fixes the order of the fish script sections.
var fishSections = []string{"Help and version", "Workload", "Modes", "Output options", "Completion"}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out)
	case "zsh":
		return generateZshCompletion(out)
	case "fish":
		return generateFishCompletion(out)
	case "powershell", "ps":
		return generatePowerShellCompletion(out)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

func flagPatterns(f FlagCompletion) []string {
	var patterns []string
	if f.Long != "" {
		patterns = append(patterns, "--"+f.Long)
	}
	if f.Short != "" {
		patterns = append(patterns, "-"+f.Short)
	}
	return patterns
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer) error {
	var opts []string
	var caseBody strings.Builder
	for _, f := range flagRegistry {
		opts = append(opts, flagPatterns(f)...)

		var body string
		switch {
		case f.IsFile:
			body = `COMPREPLY=( $(compgen -f -- "${cur}") )`
		case len(f.Values) > 0:
			body = fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " "))
		default:
			continue
		}
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(flagPatterns(f), "|"))
		caseBody.WriteString(")\n            ")
		caseBody.WriteString(body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	script := fmt.Sprintf(`# Bash completion script for parsum
# Add this to your ~/.bashrc or ~/.bash_completion

_parsum_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _parsum_completions parsum
`, strings.Join(opts, " "), caseBody.String())

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer) error {
	args := make([]string, 0, len(flagRegistry))
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	script := fmt.Sprintf(`#compdef parsum

# Zsh completion script for parsum
# Add this to your ~/.zshrc or place in $fpath

_parsum() {
    _arguments -s \
%s
}

_parsum "$@"
`, strings.Join(args, " \\\n"))

	if _, err := fmt.Fprint(out, script); err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	valueSuffix := ""
	switch {
	case f.IsFile:
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	case len(f.Values) > 0:
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	case f.ValueName != "":
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer) error {
	lines := []string{
		"# Fish completion script for parsum",
		"# Add this to ~/.config/fish/completions/parsum.fish",
		"",
		"# Disable file completion by default",
		"complete -c parsum -f",
		"",
	}

	for _, section := range fishSections {
		lines = append(lines, "# "+section)
		for _, f := range flagRegistry {
			if f.Section == section {
				lines = append(lines, fishCompleteLine(f))
			}
		}
		lines = append(lines, "")
	}

	if _, err := fmt.Fprint(out, strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion) string {
	parts := []string{"complete -c parsum"}
	if f.Short != "" {
		parts = append(parts, "-s "+f.Short)
	}
	if f.Long != "" {
		parts = append(parts, "-l "+f.Long)
	}
	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	switch {
	case f.IsFile:
		parts = append(parts, "-rF")
	case len(f.Values) > 0:
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	case f.ValueName != "":
		parts = append(parts, "-x")
	}
	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer) error {
	var optionEntries, switchEntries []string
	for _, f := range flagRegistry {
		for _, p := range flagPatterns(f) {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '%s'; Description = '%s' }", p, f.Help))
		}
		if len(f.Values) == 0 {
			continue
		}
		quoted := make([]string, len(f.Values))
		for i, v := range f.Values {
			quoted[i] = fmt.Sprintf("'%s'", v)
		}
		switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quoted, ", ")))
	}

	script := fmt.Sprintf(`# PowerShell completion script for parsum
# Add this to your $PROFILE

Register-ArgumentCompleter -CommandName 'parsum' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    switch ($prevElement) {
%s
    }

    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}
