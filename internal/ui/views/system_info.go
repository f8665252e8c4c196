package views

import (
	"github.com/hance08/walletsync/internal/service"
	"github.com/pterm/pterm"
)

type SystemInfoItem struct {
	ConfigPath     string
	DBPath         string
	DBExists       bool // true = Found, false = Not Found
	AppDataDir     string
	NotifyEndpoint string
}

func RenderSystemInfo(data SystemInfoItem) error {
	dbStatus := pterm.Green("Found")
	if !data.DBExists {
		dbStatus = pterm.Red("Not Found (Will be created)")
	}

	endpoint := data.NotifyEndpoint
	if endpoint == "" {
		endpoint = pterm.Yellow("(disabled)")
	}

	tableData := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Database Path", data.DBPath},
		{"Database Status", dbStatus},
		{"Notify Endpoint", endpoint},
		{"AppData Directory", data.AppDataDir},
	}

	return pterm.DefaultTable.WithData(tableData).Render()
}

func RenderStatus(reports []service.StatusReport) error {
	tableData := pterm.TableData{{"Currency", "Network", "Version", "Note"}}

	for _, r := range reports {
		network := pterm.Red("inactive")
		switch {
		case !r.Supported:
			network = pterm.Gray("unsupported")
		case r.Error != "":
			network = pterm.Red("unreachable")
		case r.Active:
			network = pterm.Green("active")
		}
		tableData = append(tableData, []string{r.Currency, network, r.Version, r.Error})
	}

	pterm.DefaultSection.Println("Node Status")
	return pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}
