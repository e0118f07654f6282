package leaderboard

import (
	"bytes"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"milestonebot/domain/entities"
	"milestonebot/domain/interfaces"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
)

const maxNameLength = 15

// tableColumn defines a column in the leaderboard table
type tableColumn struct {
	Header    string
	XPosition int
	ColorRGB  [3]float64
}

// tableRow is one rendered player
type tableRow struct {
	Rank int
	Data []string
}

// tableStyle defines the visual style of the table
type tableStyle struct {
	Width     int
	MinHeight int
	Padding   int
	RowHeight int
	Podium    [3][4]float64 // RGBA row highlight for 1st, 2nd and 3rd place
	Medals    [3][3]float64
}

// ImageGenerator renders leaderboard PNGs
type ImageGenerator struct {
	style   tableStyle
	catalog interfaces.CatalogProvider
}

// NewImageGenerator creates a new image generator with the default style.
// Tier columns take their colors from the catalog.
func NewImageGenerator(catalog interfaces.CatalogProvider) *ImageGenerator {
	return &ImageGenerator{
		catalog: catalog,
		style: tableStyle{
			Width:     430,
			MinHeight: 120,
			Padding:   15,
			RowHeight: 26,
			Podium: [3][4]float64{
				{1, 0.84, 0, 0.1},
				{0.8, 0.8, 0.8, 0.08},
				{0.8, 0.5, 0.2, 0.06},
			},
			Medals: [3][3]float64{
				{1, 0.84, 0},
				{0.75, 0.75, 0.75},
				{0.8, 0.5, 0.2},
			},
		},
	}
}

// Generate renders the ranked players. names holds the display name for each
// player at the same index.
func (g *ImageGenerator) Generate(players []entities.PlayerSummary, names []string) ([]byte, error) {
	pad := g.style.Padding
	columns := []tableColumn{
		{Header: "#", XPosition: pad, ColorRGB: [3]float64{0.85, 0.85, 0.9}},
		{Header: "Player", XPosition: pad + 25, ColorRGB: [3]float64{1, 1, 1}},
		{Header: "Total", XPosition: pad + 165, ColorRGB: [3]float64{0.85, 1, 0.85}},
	}
	for i, tier := range entities.Tiers {
		columns = append(columns, tableColumn{
			Header:    string(tier),
			XPosition: pad + 215 + i*55,
			ColorRGB:  g.tierRGB(tier),
		})
	}

	rows := make([]tableRow, len(players))
	for i, p := range players {
		name := p.DiscordID
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		data := []string{
			strconv.Itoa(i + 1),
			truncateName(name),
			strconv.Itoa(p.Total),
		}
		for _, tier := range entities.Tiers {
			data = append(data, strconv.Itoa(p.Count(tier)))
		}
		rows[i] = tableRow{Rank: i + 1, Data: data}
	}

	return g.generateTable(columns, rows)
}

// tierRGB converts the catalog embed color of a tier into gg components
func (g *ImageGenerator) tierRGB(tier entities.Tier) [3]float64 {
	color := g.catalog.Catalog().TierColor(tier)
	if color == 0 {
		return [3]float64{0.85, 0.85, 0.85}
	}
	return [3]float64{
		float64((color>>16)&0xFF) / 255,
		float64((color>>8)&0xFF) / 255,
		float64(color&0xFF) / 255,
	}
}

func (g *ImageGenerator) generateTable(columns []tableColumn, rows []tableRow) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("row_count", len(rows)).
			Debug("Leaderboard image generation completed")
	}()

	// Header (25px) + header padding (30px) + rows + bottom padding (15px)
	height := 25 + 30 + len(rows)*g.style.RowHeight + 15
	if height < g.style.MinHeight {
		height = g.style.MinHeight
	}
	width := g.style.Width

	dc := gg.NewContext(width, height)
	dc.SetFillRule(gg.FillRuleWinding)

	// Gradient background with a faint positional texture
	for i := 0; i < height; i++ {
		t := float64(i) / float64(height)
		baseR := 0.02 + t*0.03
		baseG := 0.02 + t*0.05
		baseB := 0.05 + t*0.1
		for x := 0; x < width; x++ {
			noise := (float64((x*i)%7) - 3.5) / 255.0
			dc.SetRGB(baseR+noise, baseG+noise, baseB+noise)
			dc.SetPixel(x, i)
		}
	}

	face, err := loadFont(gomono.TTF, 11)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	rankFace, err := loadFont(gobold.TTF, 9)
	if err != nil {
		return nil, fmt.Errorf("failed to load rank font: %w", err)
	}
	dc.SetFontFace(face)

	y := float64(25)

	dc.SetRGBA(0.3, 0.3, 0.4, 0.4)
	dc.DrawRectangle(0, y-15, float64(width), 20)
	dc.Fill()

	dc.SetRGB(1, 1, 1)
	for _, col := range columns {
		drawSharpText(dc, col.Header, float64(col.XPosition), y)
	}

	dc.SetRGBA(0.6, 0.6, 0.7, 0.7)
	dc.SetLineWidth(1)
	dc.DrawLine(0, y+8, float64(width), y+8)
	dc.Stroke()

	if len(rows) == 0 {
		dc.SetRGB(0.7, 0.7, 0.7)
		text := "No milestones logged yet"
		w, _ := dc.MeasureString(text)
		drawSharpText(dc, text, (float64(width)-w)/2, y+45)
	}

	y += 30
	for i, row := range rows {
		if i < len(g.style.Podium) {
			c := g.style.Podium[i]
			dc.SetRGBA(c[0], c[1], c[2], c[3])
		} else {
			dc.SetRGBA(0.5, 0.5, 0.6, 0.02)
		}
		dc.DrawRectangle(0, y-15, float64(width), float64(g.style.RowHeight))
		dc.Fill()

		if i < len(g.style.Medals) {
			m := g.style.Medals[i]
			dc.SetRGB(m[0], m[1], m[2])
			dc.DrawCircle(float64(g.style.Padding+3), y-4, 5)
			dc.Fill()

			dc.SetRGB(0, 0, 0)
			dc.SetFontFace(rankFace)
			dc.DrawStringAnchored(strconv.Itoa(row.Rank), float64(g.style.Padding+3), y-5, 0.5, 0.4)
			dc.SetFontFace(face)
		} else {
			c := columns[0].ColorRGB
			dc.SetRGB(c[0], c[1], c[2])
			drawSharpText(dc, row.Data[0], float64(columns[0].XPosition), y)
		}

		for j := 1; j < len(columns) && j < len(row.Data); j++ {
			c := columns[j].ColorRGB
			dc.SetRGB(c[0], c[1], c[2])
			drawSharpText(dc, row.Data[j], float64(columns[j].XPosition), y)
		}

		y += float64(g.style.RowHeight)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func truncateName(name string) string {
	if utf8.RuneCountInString(name) <= maxNameLength {
		return name
	}
	runes := []rune(name)
	return string(runes[:maxNameLength-1]) + "…"
}

// drawSharpText draws text over a faint offset shadow
func drawSharpText(dc *gg.Context, text string, x, y float64) {
	dc.Push()
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawString(text, x+0.5, y+0.5)
	dc.Pop()

	dc.DrawString(text, x, y)
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:       size,
		DPI:        72,
		Hinting:    font.HintingFull,
		SubPixelsX: 4,
		SubPixelsY: 4,
	}), nil
}
