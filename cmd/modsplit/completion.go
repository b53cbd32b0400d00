// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"io"

	"github.com/kraklabs/modsplit/internal/errors"
)

// bashCompletionTemplate is the bash completion script for modsplit.
const bashCompletionTemplate = `#!/bin/bash

# Bash completion script for modsplit
# Installation:
#   source <(modsplit --completion bash)
#   Or add to ~/.bashrc:
#   echo 'source <(modsplit --completion bash)' >> ~/.bashrc

_modsplit_completion() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    case "${prev}" in
        --batch|--config|--metrics-file)
            COMPREPLY=( $(compgen -f -- ${cur}) )
            return 0
            ;;
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- ${cur}) )
            return 0
            ;;
        --completion)
            COMPREPLY=( $(compgen -W "bash zsh fish" -- ${cur}) )
            return 0
            ;;
    esac

    # Operands may be negative numbers, so only complete flags after "--".
    if [[ ${cur} == --* ]] ; then
        COMPREPLY=( $(compgen -W "--json --yaml --output --verbose --quiet --no-color --debug --config --batch --metrics-file --max-digits --completion --version --help" -- ${cur}) )
        return 0
    fi
}

complete -F _modsplit_completion modsplit
`

// zshCompletionTemplate is the zsh completion script for modsplit.
const zshCompletionTemplate = `#compdef modsplit

# Zsh completion script for modsplit
# Installation:
#   1. Ensure compinit is loaded (add to ~/.zshrc if not present):
#      autoload -U compinit; compinit
#   2. Save this script to a directory in your fpath:
#      modsplit --completion zsh > "${fpath[1]}/_modsplit"
#   3. Reload completions:
#      rm -f ~/.zcompdump; compinit

_modsplit() {
    _arguments \
        '(--yaml --output -o)--json[Output as JSON]' \
        '(--json --output -o)--yaml[Output as YAML]' \
        '(-o --output --json --yaml)'{-o,--output}'[Output format]:format:(text json yaml)' \
        '(-v --verbose)'{-v,--verbose}'[Explain the arithmetic on stderr]' \
        '(-q --quiet)'{-q,--quiet}'[Suppress progress and explanations]' \
        '--no-color[Disable colored output]' \
        '--debug[Enable debug logging]' \
        '--config[Path to config file]:config file:_files -g "*.yaml"' \
        '--batch[Split one pair per line of FILE]:batch file:_files' \
        '--metrics-file[Write Prometheus metrics on exit]:metrics file:_files' \
        '--max-digits[Maximum operand length]:digits:' \
        '(- *)--completion[Print shell completion script]:shell:(bash zsh fish)' \
        '(- *)--version[Show version and exit]' \
        '1:N (dividend):' \
        '2:M (divisor):'
}

_modsplit
`

// fishCompletionTemplate is the fish completion script for modsplit.
const fishCompletionTemplate = `# Fish completion script for modsplit
# Installation:
#   1. Load completions for current session:
#      modsplit --completion fish | source
#   2. Install permanently:
#      modsplit --completion fish > ~/.config/fish/completions/modsplit.fish

complete -c modsplit -f
complete -c modsplit -l json -d "Output as JSON"
complete -c modsplit -l yaml -d "Output as YAML"
complete -c modsplit -s o -l output -d "Output format" -x -a "text json yaml"
complete -c modsplit -s v -l verbose -d "Explain the arithmetic on stderr"
complete -c modsplit -s q -l quiet -d "Suppress progress and explanations"
complete -c modsplit -l no-color -d "Disable colored output"
complete -c modsplit -l debug -d "Enable debug logging"
complete -c modsplit -l config -d "Path to config file" -r -F
complete -c modsplit -l batch -d "Split one pair per line of FILE" -r -F
complete -c modsplit -l metrics-file -d "Write Prometheus metrics on exit" -r -F
complete -c modsplit -l max-digits -d "Maximum operand length" -x
complete -c modsplit -l completion -d "Print shell completion script" -x -a "bash zsh fish"
complete -c modsplit -l version -d "Show version and exit"
`

// completionScripts maps a shell name to its completion script.
var completionScripts = map[string]string{
	"bash": bashCompletionTemplate,
	"zsh":  zshCompletionTemplate,
	"fish": fishCompletionTemplate,
}

// runCompletion prints the completion script for shell.
//
// Examples:
//
//	source <(modsplit --completion bash)
//	modsplit --completion zsh > "${fpath[1]}/_modsplit"
//	modsplit --completion fish | source
func runCompletion(shell string, stdout, stderr io.Writer) int {
	script, ok := completionScripts[shell]
	if !ok {
		return errors.Report(stderr, errors.NewUsageError(
			"Unsupported shell",
			fmt.Sprintf("Shell '%s' is not supported. Valid options: bash, zsh, fish", shell),
			"Run 'modsplit --completion bash', '--completion zsh', or '--completion fish'",
		), false, false)
	}
	fmt.Fprint(stdout, script)
	return errors.ExitSuccess
}
