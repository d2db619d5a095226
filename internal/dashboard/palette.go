package dashboard

// Qualitative palettes.
var (
	pastel = []string{
		"rgb(102, 197, 204)", "rgb(246, 207, 113)", "rgb(248, 156, 116)", "rgb(220, 176, 242)",
		"rgb(135, 197, 95)", "rgb(158, 185, 243)", "rgb(254, 136, 177)", "rgb(201, 219, 116)",
		"rgb(139, 224, 164)", "rgb(180, 151, 231)", "rgb(179, 179, 179)",
	}
	dark24 = []string{
		"#2E91E5", "#E15F99", "#1CA71C", "#FB0D0D", "#DA16FF", "#222A2A", "#B68100", "#750D86",
		"#EB663B", "#511CFB", "#00A08B", "#FB00D1", "#FC0080", "#B2828D", "#6C7C32", "#778AAE",
		"#862A16", "#A777F1", "#620042", "#1616A7", "#DA60CA", "#6C4516", "#0D2A63", "#AF0038",
	}
	light24 = []string{
		"#FD3216", "#00FE35", "#6A76FC", "#FED4C4", "#FE00CE", "#0DF9FF", "#F6F926", "#FF9616",
		"#479B55", "#EEA6FB", "#DC587D", "#D626FF", "#6E899C", "#00B5F7", "#B68E00", "#C9FBE5",
		"#FF0092", "#22FFA7", "#E3EE9E", "#86CE00", "#BC7196", "#7E7DCD", "#FC6955", "#E48F72",
	}
	vivid = []string{
		"rgb(229, 134, 6)", "rgb(93, 105, 177)", "rgb(82, 188, 163)", "rgb(153, 201, 69)",
		"rgb(204, 97, 176)", "rgb(36, 121, 108)", "rgb(218, 165, 27)", "rgb(47, 138, 196)",
		"rgb(118, 78, 159)", "rgb(237, 100, 90)", "rgb(165, 170, 153)",
	}
	g10 = []string{
		"#3366CC", "#DC3912", "#FF9900", "#109618", "#990099",
		"#0099C6", "#DD4477", "#66AA00", "#B82E2E", "#316395",
	}
	set3 = []string{
		"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462",
		"#b3de69", "#fccde5", "#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f",
	}
)

// Continuous scales, low to high.
var (
	viridis = []string{
		"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
		"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
	}
	coolwarm = []string{"#3b4cc0", "#7b9ff9", "#c0d4f5", "#f2cbb7", "#ee8468", "#b40426"}
)

// geoNames maps dataset country names to the names the world map uses.
// Names not listed pass through unchanged; the map drops what it cannot match.
var geoNames = map[string]string{
	"USA":         "United States",
	"UK":          "United Kingdom",
	"South Korea": "Korea",
}

func geoName(country string) string {
	if n, ok := geoNames[country]; ok {
		return n
	}
	return country
}
