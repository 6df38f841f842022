package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/codewandler/gocd-mcp/internal/gocd"
	"github.com/fatih/color"
	"golang.org/x/term"
)

var (
	headerColor = color.New(color.FgCyan, color.Bold)
	groupColor  = color.New(color.FgYellow, color.Bold)
	nameColor   = color.New(color.FgWhite)
	pausedColor = color.New(color.FgYellow)
	lockedColor = color.New(color.FgRed)
	okColor     = color.New(color.FgGreen)
	dimColor    = color.New(color.FgHiBlack)
	linkColor   = color.New(color.FgCyan, color.Underline)
)

// hyperlink creates a clickable terminal hyperlink using OSC 8 escape sequence
// Uses BEL (\a) as string terminator for wider terminal compatibility
func hyperlink(url, text string) string {
	styledText := linkColor.Sprint(text)
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return styledText
	}
	return fmt.Sprintf("\x1b]8;;%s\x07%s\x1b]8;;\x07", url, styledText)
}

// PrintHeader prints the dashboard banner
func PrintHeader(serverURL string) {
	line := strings.Repeat("═", 60)
	fmt.Println()
	headerColor.Println(line)
	headerColor.Printf("  GoCD Pipelines (%s)\n", serverURL)
	headerColor.Println(line)
	fmt.Println()
}

// PrintPipelines prints the normalized pipeline list grouped by pipeline
// group, preserving the dashboard order.
func PrintPipelines(serverURL string, pipelines []gocd.Pipeline) {
	if len(pipelines) == 0 {
		dimColor.Println("  No pipelines found.")
		return
	}

	currentGroup := ""
	for _, p := range pipelines {
		if p.Group != currentGroup {
			if currentGroup != "" {
				fmt.Println()
			}
			currentGroup = p.Group
			groupColor.Printf("  %s\n", currentGroup)
		}

		historyURL := fmt.Sprintf("%s/tab/pipeline/history/%s", strings.TrimRight(serverURL, "/"), p.Name)
		fmt.Printf("    %s  %s\n", hyperlink(historyURL, nameColor.Sprint(p.Name)), statusLabel(p))
	}
	fmt.Println()
}

func statusLabel(p gocd.Pipeline) string {
	var labels []string

	if p.Locked {
		labels = append(labels, lockedColor.Sprint("locked"))
	}
	if p.PauseInfo != nil && p.PauseInfo.Paused {
		label := "paused"
		if p.PauseInfo.PauseReason != nil && *p.PauseInfo.PauseReason != "" {
			label = fmt.Sprintf("paused: %s", *p.PauseInfo.PauseReason)
		}
		labels = append(labels, pausedColor.Sprint(label))
	}

	if len(labels) == 0 {
		return okColor.Sprint("active")
	}
	return strings.Join(labels, dimColor.Sprint(", "))
}
