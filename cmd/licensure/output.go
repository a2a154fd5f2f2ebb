package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"

	"github.com/ochairo/licensure/internal/domain/entities"
)

// maxListed bounds the unusual-format listing
const maxListed = 10

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Dark: "#82aaff", Light: "#2e7de9"})
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Dark: "#c3e88d", Light: "#587539"})
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Dark: "#ffcb6b", Light: "#8c6c3e"})
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Dark: "#ff5370", Light: "#f52a65"})
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Dark: "#697098", Light: "#8990a3"})
)

// printer renders console output, styled only on a terminal
type printer struct {
	w      io.Writer
	styled bool
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w, styled: isTerminal(w)}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

func (p *printer) line(text string) {
	_, _ = fmt.Fprintln(p.w, text)
}

func (p *printer) raw(text string) {
	_, _ = io.WriteString(p.w, text)
}

func (p *printer) progress(icon, msg string) {
	p.line(fmt.Sprintf("%s %s\n", icon, msg))
}

func (p *printer) success(msg string) {
	p.line(p.style(successStyle, "✓ "+msg))
}

func (p *printer) heading(icon string, style lipgloss.Style, title string) {
	p.line("")
	p.line(icon + " " + p.style(style, title))
}

func (p *printer) none() {
	p.line(p.style(mutedStyle, "  (none)"))
}

func printTable(writer io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(writer)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.SetNoWhiteSpace(true)
	table.AppendBulk(rows)
	table.Render()
}

func (p *printer) usageTable(usages []entities.LicenseUsage) {
	rows := make([][]string, 0, len(usages))
	for _, u := range usages {
		rows = append(rows, []string{"  " + u.ID, strconv.Itoa(u.Components)})
	}
	printTable(p.w, []string{"  License", "Components"}, rows)
}

func (p *printer) printReport(report *entities.LicenseReport) {
	if report == nil {
		return
	}
	s := report.Summary

	p.heading("📊", titleStyle, "Summary:")
	p.line(fmt.Sprintf("  Total components: %d", s.TotalComponents))
	p.line(fmt.Sprintf("  Total dependencies: %d", s.TotalDependencies))
	p.line(fmt.Sprintf("  Components with licenses: %d", s.WithLicenses))
	p.line(fmt.Sprintf("  Components without licenses: %d", s.WithoutLicenses))
	p.line(fmt.Sprintf("  Components with Unknown licenses: %d", s.UnknownLicenses))
	p.line(fmt.Sprintf("  Components requiring legal counsel: %d", s.CounselRequired))

	p.heading("📜", titleStyle, fmt.Sprintf("License Types (%d unique):", report.UniqueLicenseCount))
	p.line("  " + strings.Join(report.Licenses, ", "))

	p.heading("🔐", titleStyle, "License Categorization:")

	p.heading("✅", successStyle, fmt.Sprintf("ALLOW (No approval required) - %d license(s):", len(report.Tiers.Allow)))
	p.tier(report.Tiers.Allow)

	p.heading("⚠️ ", warningStyle, fmt.Sprintf("REVIEW REQUIRED - %d license(s):", len(report.Tiers.ReviewRequired)))
	p.tier(report.Tiers.ReviewRequired)

	p.heading("🚨", errorStyle, fmt.Sprintf("MUST OBTAIN COUNSEL + COMPLIANCE PLAN - %d license type(s) + %d problematic component(s):",
		len(report.Tiers.CounselRequired), len(report.CounselComponents)))
	if len(report.Tiers.CounselRequired) > 0 {
		p.usageTable(report.Tiers.CounselRequired)
	}
	p.flagged(report.CounselComponents)
	if len(report.Tiers.CounselRequired) == 0 && len(report.CounselComponents) == 0 {
		p.none()
	}

	p.heading("❓", warningStyle, fmt.Sprintf("UNCATEGORIZED (Not in any category) - %d license(s):", len(report.Tiers.Uncategorized)))
	p.tier(report.Tiers.Uncategorized)

	p.unusual(report.Warnings)

	if len(report.Expressions) > 0 {
		p.heading("📝", titleStyle, fmt.Sprintf("License Expressions Found (%d):", len(report.Expressions)))
		for _, expr := range report.Expressions {
			p.line("  - " + expr)
		}
	}
	if len(report.Names) > 0 {
		p.heading("📝", titleStyle, fmt.Sprintf("License Names (without IDs) Found (%d):", len(report.Names)))
		for _, name := range report.Names {
			p.line("  - " + name)
		}
	}
}

func (p *printer) tier(usages []entities.LicenseUsage) {
	if len(usages) == 0 {
		p.none()
		return
	}
	p.usageTable(usages)
}

// flagged prints counsel components grouped by reason, in first-seen reason order
func (p *printer) flagged(components []entities.FlaggedComponent) {
	var reasons []entities.FlagReason
	byReason := make(map[entities.FlagReason][]entities.FlaggedComponent)
	for _, comp := range components {
		if _, ok := byReason[comp.Reason]; !ok {
			reasons = append(reasons, comp.Reason)
		}
		byReason[comp.Reason] = append(byReason[comp.Reason], comp)
	}

	for _, reason := range reasons {
		group := byReason[reason]
		p.line("")
		p.line(fmt.Sprintf("  %s (%d component(s)):", reason, len(group)))

		rows := make([][]string, 0, len(group))
		for _, comp := range group {
			rows = append(rows, []string{"  " + comp.Name, string(comp.Ecosystem), dependentsColumn(comp)})
		}
		printTable(p.w, []string{"  Component", "Ecosystem", "Depended on by"}, rows)
	}
}

func dependentsColumn(comp entities.FlaggedComponent) string {
	if comp.TotalDependents() == 0 {
		return "(none, may be a direct dependency)"
	}
	col := strings.Join(comp.Dependents, ", ")
	if comp.MoreDependents > 0 {
		col += fmt.Sprintf(" ... and %d more", comp.MoreDependents)
	}
	return col
}

func (p *printer) unusual(warnings []entities.Warning) {
	var unusual []entities.Warning
	for _, w := range warnings {
		if w.Kind == entities.WarningUnusualExpression || w.Kind == entities.WarningFreeTextLicense {
			unusual = append(unusual, w)
		}
	}
	if len(unusual) == 0 {
		return
	}

	p.heading("🔍", warningStyle, fmt.Sprintf("Components with Unusual License Formats (%d):", len(unusual)))
	for i, w := range unusual {
		if i == maxListed {
			p.line(fmt.Sprintf("  ... and %d more", len(unusual)-maxListed))
			break
		}
		switch w.Kind {
		case entities.WarningUnusualExpression:
			p.line(fmt.Sprintf("  - %s (%s): expression=%q", w.Component, w.Ecosystem, w.Detail))
		default:
			p.line(fmt.Sprintf("  - %s (%s): name=%q (no ID)", w.Component, w.Ecosystem, w.Detail))
		}
	}
}

func (p *printer) printNotice(notice *entities.ThirdPartyNotice) {
	if notice == nil {
		return
	}

	p.heading("📄", titleStyle, fmt.Sprintf("Third-party notice: %d license section(s)", len(notice.Sections)))

	if len(notice.Missing) > 0 {
		p.heading("⚠️ ", warningStyle, "MISSING LICENSES: found in the SBOM but not included in the notice:")
		rows := make([][]string, 0, len(notice.Missing))
		for _, id := range notice.Missing {
			rows = append(rows, []string{"  " + id, strconv.Itoa(notice.Usage[id])})
		}
		printTable(p.w, []string{"  License", "Components"}, rows)
		p.line("")
		p.line("  Add them to the licensesToInclude section of the licensing configuration with their full license texts.")
	} else {
		p.success("All licenses found in the SBOM are included in the notice")
	}

	if len(notice.Unused) > 0 {
		p.heading("ℹ️ ", mutedStyle, "UNUSED LICENSES: configured but not found in the SBOM:")
		for _, id := range notice.Unused {
			p.line("  - " + id)
		}
	}
}

func (p *printer) printArtifacts(artifacts []*entities.Artifact) {
	if len(artifacts) == 0 {
		return
	}
	p.line("")
	rows := make([][]string, 0, len(artifacts))
	for _, a := range artifacts {
		rows = append(rows, []string{string(a.Kind), a.Path, a.SHA256})
	}
	printTable(p.w, []string{"Artifact", "Path", "SHA256"}, rows)
}
