package config

import "github.com/jesseduffield/gocui"

// Theme is the resolved color palette the TUI paints with.
type Theme struct {
	ActiveBorder   gocui.Attribute
	InactiveBorder gocui.Attribute
	SelectedBg     gocui.Attribute
	VisualBg       gocui.Attribute
	EditBg         gocui.Attribute
	PrimaryText    gocui.Attribute
	SecondaryText  gocui.Attribute
	TimerText      gocui.Attribute
	Success        gocui.Attribute
	Warning        gocui.Attribute
	Error          gocui.Attribute
}

func themeByName(name string) Theme {
	switch name {
	case "kanagawa":
		return kanagawaTheme()
	case "gruvbox":
		return gruvboxTheme()
	case "dracula":
		return draculaTheme()
	case "terminal":
		return terminalTheme()
	default:
		return defaultTheme()
	}
}

func defaultTheme() Theme {
	return Theme{
		ActiveBorder:   gocui.ColorCyan,
		InactiveBorder: gocui.ColorDefault,
		SelectedBg:     gocui.NewRGBColor(40, 40, 60),
		VisualBg:       gocui.NewRGBColor(70, 130, 180),
		EditBg:         gocui.NewRGBColor(22, 78, 99),
		PrimaryText:    gocui.ColorWhite,
		SecondaryText:  gocui.ColorDefault,
		TimerText:      gocui.ColorYellow,
		Success:        gocui.ColorGreen,
		Warning:        gocui.ColorYellow,
		Error:          gocui.ColorRed,
	}
}

func kanagawaTheme() Theme {
	return Theme{
		ActiveBorder:   gocui.NewRGBColor(127, 180, 202),
		InactiveBorder: gocui.NewRGBColor(56, 53, 51),
		SelectedBg:     gocui.NewRGBColor(34, 50, 73),
		VisualBg:       gocui.NewRGBColor(73, 97, 122),
		EditBg:         gocui.NewRGBColor(52, 66, 81),
		PrimaryText:    gocui.NewRGBColor(200, 192, 147),
		SecondaryText:  gocui.NewRGBColor(161, 152, 123),
		TimerText:      gocui.NewRGBColor(230, 195, 132),
		Success:        gocui.NewRGBColor(135, 169, 135),
		Warning:        gocui.NewRGBColor(230, 195, 132),
		Error:          gocui.NewRGBColor(228, 104, 118),
	}
}

func gruvboxTheme() Theme {
	return Theme{
		ActiveBorder:   gocui.NewRGBColor(131, 165, 152),
		InactiveBorder: gocui.NewRGBColor(102, 92, 84),
		SelectedBg:     gocui.NewRGBColor(102, 92, 84),
		VisualBg:       gocui.NewRGBColor(142, 192, 124),
		EditBg:         gocui.NewRGBColor(102, 92, 84),
		PrimaryText:    gocui.NewRGBColor(235, 219, 178),
		SecondaryText:  gocui.NewRGBColor(168, 153, 132),
		TimerText:      gocui.NewRGBColor(250, 189, 47),
		Success:        gocui.NewRGBColor(184, 187, 38),
		Warning:        gocui.NewRGBColor(250, 189, 47),
		Error:          gocui.NewRGBColor(251, 73, 52),
	}
}

func draculaTheme() Theme {
	return Theme{
		ActiveBorder:   gocui.NewRGBColor(214, 172, 255),
		InactiveBorder: gocui.NewRGBColor(68, 71, 90),
		SelectedBg:     gocui.NewRGBColor(68, 71, 90),
		VisualBg:       gocui.NewRGBColor(164, 255, 255),
		EditBg:         gocui.NewRGBColor(68, 71, 90),
		PrimaryText:    gocui.NewRGBColor(248, 248, 242),
		SecondaryText:  gocui.NewRGBColor(248, 248, 242),
		TimerText:      gocui.NewRGBColor(255, 255, 165),
		Success:        gocui.NewRGBColor(105, 255, 148),
		Warning:        gocui.NewRGBColor(255, 255, 165),
		Error:          gocui.NewRGBColor(255, 110, 110),
	}
}

// terminalTheme leaves everything on the terminal's own palette.
func terminalTheme() Theme {
	return Theme{
		ActiveBorder:   gocui.ColorCyan,
		InactiveBorder: gocui.ColorDefault,
		SelectedBg:     gocui.ColorBlue,
		VisualBg:       gocui.ColorCyan,
		EditBg:         gocui.ColorBlue,
		PrimaryText:    gocui.ColorDefault,
		SecondaryText:  gocui.ColorDefault,
		TimerText:      gocui.ColorYellow,
		Success:        gocui.ColorGreen,
		Warning:        gocui.ColorYellow,
		Error:          gocui.ColorRed,
	}
}
