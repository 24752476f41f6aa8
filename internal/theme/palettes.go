package theme

import "github.com/charmbracelet/lipgloss"

func chart(hex ...string) [ChartColors]lipgloss.Color {
	var out [ChartColors]lipgloss.Color
	for i := range out {
		out[i] = lipgloss.Color(hex[i%len(hex)])
	}
	return out
}

// Default is the neutral project palette.
var Default = Palette{
	ID:          "default",
	Name:        "Default",
	Description: "Project default colors",
	Light: Colors{
		Background: lipgloss.Color("#FFFFFF"),
		Surface:    lipgloss.Color("#F4F4F5"),
		Border:     lipgloss.Color("#D4D4D8"),
		TextDim:    lipgloss.Color("#A1A1AA"),
		TextMuted:  lipgloss.Color("#71717A"),
		Text:       lipgloss.Color("#18181B"),
		Primary:    lipgloss.Color("#18181B"),
		Accent:     lipgloss.Color("#2563EB"),
		Success:    lipgloss.Color("#16A34A"),
		Warning:    lipgloss.Color("#CA8A04"),
		Danger:     lipgloss.Color("#DC2626"),
		Chart: chart("#E76E50", "#2A9D90", "#274754", "#E8C468", "#F4A462", "#6366F1",
			"#EC4899", "#14B8A6", "#84CC16", "#F97316", "#8B5CF6", "#0EA5E9"),
	},
	Dark: Colors{
		Background: lipgloss.Color("#09090B"),
		Surface:    lipgloss.Color("#18181B"),
		Border:     lipgloss.Color("#3F3F46"),
		TextDim:    lipgloss.Color("#52525B"),
		TextMuted:  lipgloss.Color("#A1A1AA"),
		Text:       lipgloss.Color("#FAFAFA"),
		Primary:    lipgloss.Color("#FAFAFA"),
		Accent:     lipgloss.Color("#60A5FA"),
		Success:    lipgloss.Color("#4ADE80"),
		Warning:    lipgloss.Color("#FACC15"),
		Danger:     lipgloss.Color("#F87171"),
		Chart: chart("#2662D9", "#2EB88A", "#E88C30", "#AF57DB", "#E23670", "#38BDF8",
			"#A3E635", "#FB923C", "#C084FC", "#F472B6", "#2DD4BF", "#FACC15"),
	},
}

// Kodama is green-forward with warm paper tones.
var Kodama = Palette{
	ID:          "kodama",
	Name:        "Kodama",
	Description: "Serif-forward, green accents",
	Light: Colors{
		Background: lipgloss.Color("#F5F1E6"),
		Surface:    lipgloss.Color("#ECE5D3"),
		Border:     lipgloss.Color("#CFC6AE"),
		TextDim:    lipgloss.Color("#A69F8A"),
		TextMuted:  lipgloss.Color("#6F6A58"),
		Text:       lipgloss.Color("#3B3A2E"),
		Primary:    lipgloss.Color("#71893B"),
		Accent:     lipgloss.Color("#8FA35C"),
		Success:    lipgloss.Color("#5C7A2E"),
		Warning:    lipgloss.Color("#B8860B"),
		Danger:     lipgloss.Color("#B5473A"),
		Chart: chart("#71893B", "#A0B466", "#C9B26B", "#8C6A3F", "#5E7B6A", "#B5473A",
			"#4F6B3A", "#D4A24C", "#7A8F5C", "#A26E4F", "#3E5C4B", "#C2C47A"),
	},
	Dark: Colors{
		Background: lipgloss.Color("#1F1E18"),
		Surface:    lipgloss.Color("#2A2920"),
		Border:     lipgloss.Color("#45432F"),
		TextDim:    lipgloss.Color("#66624C"),
		TextMuted:  lipgloss.Color("#A39F86"),
		Text:       lipgloss.Color("#EDE7D4"),
		Primary:    lipgloss.Color("#A0B466"),
		Accent:     lipgloss.Color("#C2D48A"),
		Success:    lipgloss.Color("#8FB34F"),
		Warning:    lipgloss.Color("#E0B65A"),
		Danger:     lipgloss.Color("#E07A6A"),
		Chart: chart("#A0B466", "#C2D48A", "#E0C98A", "#C49A6C", "#86A896", "#E07A6A",
			"#7E9E5E", "#F0C070", "#A9BC88", "#D19A7A", "#6E9480", "#E2E4A0"),
	},
}

// StarryNight is deep blue with gold highlights.
var StarryNight = Palette{
	ID:          "starry-night",
	Name:        "Starry Night",
	Description: "Deep blues with gold accents",
	Light: Colors{
		Background: lipgloss.Color("#F2F4FA"),
		Surface:    lipgloss.Color("#E3E8F4"),
		Border:     lipgloss.Color("#BCC6DE"),
		TextDim:    lipgloss.Color("#8F9BB8"),
		TextMuted:  lipgloss.Color("#5A6688"),
		Text:       lipgloss.Color("#1B2542"),
		Primary:    lipgloss.Color("#2B4C9B"),
		Accent:     lipgloss.Color("#D9A520"),
		Success:    lipgloss.Color("#2E8B57"),
		Warning:    lipgloss.Color("#D9A520"),
		Danger:     lipgloss.Color("#C0392B"),
		Chart: chart("#2B4C9B", "#D9A520", "#4A76C9", "#F2C94C", "#1B2542", "#7FA3E0",
			"#B8860B", "#36558F", "#E5B83F", "#5C86D6", "#8C6D1F", "#A9C2EC"),
	},
	Dark: Colors{
		Background: lipgloss.Color("#0B1226"),
		Surface:    lipgloss.Color("#152042"),
		Border:     lipgloss.Color("#2A3A66"),
		TextDim:    lipgloss.Color("#4A5A85"),
		TextMuted:  lipgloss.Color("#93A3CC"),
		Text:       lipgloss.Color("#E8ECF8"),
		Primary:    lipgloss.Color("#F2C94C"),
		Accent:     lipgloss.Color("#7FA3E0"),
		Success:    lipgloss.Color("#5FD38D"),
		Warning:    lipgloss.Color("#F2C94C"),
		Danger:     lipgloss.Color("#FF6B5E"),
		Chart: chart("#F2C94C", "#7FA3E0", "#E5B83F", "#4A76C9", "#FFE08A", "#A9C2EC",
			"#D9A520", "#5C86D6", "#FFD36B", "#36558F", "#C9A24A", "#DCE6F8"),
	},
}

// Bubblegum is pink with teal and blue accents.
var Bubblegum = Palette{
	ID:          "bubblegum",
	Name:        "Bubblegum",
	Description: "Playful pinks with teal/blue accents",
	Light: Colors{
		Background: lipgloss.Color("#FDF2F8"),
		Surface:    lipgloss.Color("#FBE4F1"),
		Border:     lipgloss.Color("#F5C2DD"),
		TextDim:    lipgloss.Color("#C99AB4"),
		TextMuted:  lipgloss.Color("#8E5B78"),
		Text:       lipgloss.Color("#4A1D36"),
		Primary:    lipgloss.Color("#DB2777"),
		Accent:     lipgloss.Color("#14B8A6"),
		Success:    lipgloss.Color("#0D9488"),
		Warning:    lipgloss.Color("#D97706"),
		Danger:     lipgloss.Color("#BE123C"),
		Chart: chart("#DB2777", "#14B8A6", "#3B82F6", "#F472B6", "#2DD4BF", "#60A5FA",
			"#BE185D", "#0F766E", "#1D4ED8", "#F9A8D4", "#5EEAD4", "#93C5FD"),
	},
	Dark: Colors{
		Background: lipgloss.Color("#1F0E18"),
		Surface:    lipgloss.Color("#2E1524"),
		Border:     lipgloss.Color("#4F2540"),
		TextDim:    lipgloss.Color("#6E4660"),
		TextMuted:  lipgloss.Color("#C28AAE"),
		Text:       lipgloss.Color("#FCE7F3"),
		Primary:    lipgloss.Color("#F472B6"),
		Accent:     lipgloss.Color("#2DD4BF"),
		Success:    lipgloss.Color("#5EEAD4"),
		Warning:    lipgloss.Color("#FBBF24"),
		Danger:     lipgloss.Color("#FB7185"),
		Chart: chart("#F472B6", "#2DD4BF", "#60A5FA", "#F9A8D4", "#5EEAD4", "#93C5FD",
			"#EC4899", "#14B8A6", "#3B82F6", "#FBCFE8", "#99F6E4", "#BFDBFE"),
	},
}
