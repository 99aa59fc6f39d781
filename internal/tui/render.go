package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/indexingco/indexingco-cli/internal/config"
	"github.com/indexingco/indexingco-cli/internal/tui/command"
	"github.com/indexingco/indexingco-cli/internal/tui/components"
	"github.com/indexingco/indexingco-cli/internal/tui/state"
)

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return ""
	}

	if a.state.ShowHelp {
		a.helpOverlay.SetSize(a.width, a.height)
		return a.helpOverlay.View()
	}

	return a.renderLayout()
}

func (a *App) renderLayout() string {
	st := a.state

	a.header.SetWidth(a.width)
	a.header.SetInfo(a.headerInfo())
	header := a.header.View()

	var bottom []string
	if banner := a.bannerView(); banner != "" {
		bottom = append(bottom, banner)
	}
	switch st.Mode {
	case state.ModeCommand:
		a.commandBar.SetWidth(a.width)
		var suggestions []string
		if a.workflow == nil {
			suggestions = components.Suggest(st.CommandInput, command.Verbs)
		}
		bottom = append(bottom, a.commandBar.View(st.CommandInput, a.commandHint, suggestions))
	case state.ModeSearch:
		a.commandBar.SetWidth(a.width)
		ts := st.Current()
		bottom = append(bottom, a.commandBar.SearchView(ts.SearchQuery, len(ts.SearchMatches), ts.CurrentMatch))
	}
	a.footer.SetWidth(a.width)
	a.footer.SetStatus(st.Mode, st.Focus, st.ActiveTab)
	bottom = append(bottom, a.footer.View())
	bottomView := lipgloss.JoinVertical(lipgloss.Left, bottom...)

	bodyHeight := max(3, a.height-lipgloss.Height(header)-lipgloss.Height(bottomView))
	body := a.renderBody(bodyHeight)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, bottomView)
}

func (a *App) renderBody(height int) string {
	st := a.state
	item, _ := st.SelectedItem()

	sidebarWidth := max(22, a.width/6)
	a.sidebar.SetSize(sidebarWidth, height)
	a.sidebar.SetFocused(st.Focus == state.FocusSidebar)
	sidebar := a.sidebar.View(st.ActiveTab, a.counts())

	mainWidth := max(20, a.width-sidebarWidth)

	if st.DetailMode == state.DetailModal {
		a.details.SetSize(mainWidth, height)
		a.details.SetFocused(true)
		return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, a.details.View(detailTitle(item), item, true))
	}

	tableWidth := mainWidth
	var detail string
	if st.DetailMode == state.DetailSplit {
		detailWidth := mainWidth * 2 / 5
		tableWidth = mainWidth - detailWidth
		a.details.SetSize(detailWidth, height)
		a.details.SetFocused(st.Focus == state.FocusDetail)
		detail = a.details.View(detailTitle(item), item, false)
	}

	a.table.SetSize(tableWidth, height)
	a.table.SetFocused(st.Focus == state.FocusContent)
	content := a.table.View(st.ActiveTab, st.Current(), st.ViewMode)

	if detail == "" {
		return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content, detail)
}

func detailTitle(item state.Item) string {
	if item == nil {
		return "Details"
	}
	return item.Key()
}

func (a *App) bannerView() string {
	a.banner.SetWidth(a.width)
	return a.banner.View(a.state.Message)
}

func (a *App) counts() [state.TabCount]int {
	var counts [state.TabCount]int
	for _, tab := range state.Tabs {
		counts[tab] = len(a.state.Tab(tab).Items)
	}
	return counts
}

func (a *App) headerInfo() components.HeaderInfo {
	st := a.state
	return components.HeaderInfo{
		ActiveTab:   st.ActiveTab,
		Environment: environment,
		APIKey:      config.MaskAPIKey(a.apiKey),
		Countdown:   st.RefreshCountdown,
		Interval:    st.RefreshInterval,
		LogLevel:    st.LogLevel,
		LastUpdated: st.Current().LastUpdated,
		Counts:      a.counts(),
		Activity:    a.spinner.View(),
	}
}
