package render

import (
	"bytes"
	"fmt"
	"image/color"
	"os"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"eduflix-api/internal/domain"
)

const (
	certWidth  = 1123
	certHeight = 794
)

// Renderer рисует PNG-документы: сертификаты и отчёты по статистике.
// Шрифт опционален — без него берётся встроенный face библиотеки.
type Renderer struct {
	fontPath string
}

func NewRenderer(fontPath string) *Renderer {
	return &Renderer{fontPath: fontPath}
}

// Certificate — альбомный лист с фиксированной раскладкой.
func (r *Renderer) Certificate(data domain.CertificateData) ([]byte, error) {
	dc := gg.NewContext(certWidth, certHeight)

	dc.SetColor(color.White)
	dc.Clear()

	// Рамка
	dc.SetRGB255(30, 64, 175)
	dc.SetLineWidth(6)
	dc.DrawRectangle(28, 28, certWidth-56, certHeight-56)
	dc.Stroke()
	dc.SetLineWidth(2)
	dc.DrawRectangle(40, 40, certWidth-80, certHeight-80)
	dc.Stroke()

	cx := float64(certWidth) / 2

	if err := r.setFace(dc, 48); err != nil {
		return nil, err
	}
	dc.SetRGB255(30, 64, 175)
	dc.DrawStringAnchored("Certificado de Finalización", cx, 150, 0.5, 0.5)

	if err := r.setFace(dc, 22); err != nil {
		return nil, err
	}
	dc.SetRGB255(75, 85, 99)
	dc.DrawStringAnchored("Se otorga el presente certificado a", cx, 250, 0.5, 0.5)

	if err := r.setFace(dc, 40); err != nil {
		return nil, err
	}
	dc.SetRGB255(17, 24, 39)
	dc.DrawStringAnchored(data.StudentName, cx, 330, 0.5, 0.5)

	if err := r.setFace(dc, 22); err != nil {
		return nil, err
	}
	dc.SetRGB255(75, 85, 99)
	dc.DrawStringAnchored("por haber completado exitosamente el curso", cx, 410, 0.5, 0.5)

	if err := r.setFace(dc, 32); err != nil {
		return nil, err
	}
	dc.SetRGB255(30, 64, 175)
	dc.DrawStringAnchored(data.CourseName, cx, 480, 0.5, 0.5)

	if err := r.setFace(dc, 20); err != nil {
		return nil, err
	}
	dc.SetRGB255(107, 114, 128)
	dc.DrawStringAnchored(
		fmt.Sprintf("Fecha de finalización: %s", data.CompletionDate.Format("02/01/2006")),
		cx, 580, 0.5, 0.5,
	)
	dc.DrawStringAnchored("EduFlix", cx, 680, 0.5, 0.5)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// StatsReport — сводка прогресса пользователя одной картинкой.
func (r *Renderer) StatsReport(stats domain.UserStats) ([]byte, error) {
	height := 360 + 40*len(stats.CategoriesProgress)
	dc := gg.NewContext(800, height)

	dc.SetColor(color.White)
	dc.Clear()

	if err := r.setFace(dc, 32); err != nil {
		return nil, err
	}
	dc.SetRGB255(30, 64, 175)
	dc.DrawStringAnchored("Mi progreso en EduFlix", 400, 60, 0.5, 0.5)

	if err := r.setFace(dc, 20); err != nil {
		return nil, err
	}
	dc.SetRGB255(17, 24, 39)
	dc.DrawString(fmt.Sprintf("Cursos completados: %d", stats.CompletedCourses), 60, 140)
	dc.DrawString(fmt.Sprintf("Minutos de estudio: %.0f", stats.TotalMinutes), 60, 180)
	dc.DrawString(fmt.Sprintf("Progreso total: %.1f%%", stats.TotalProgress), 60, 220)

	y := 280.0
	for _, cp := range stats.CategoriesProgress {
		dc.SetRGB255(75, 85, 99)
		dc.DrawString(cp.Name, 60, y)

		// Полоса прогресса
		dc.SetRGB255(229, 231, 235)
		dc.DrawRoundedRectangle(320, y-16, 400, 20, 10)
		dc.Fill()
		if cp.Progress > 0 {
			dc.SetHexColor(barColor(cp.Color))
			dc.DrawRoundedRectangle(320, y-16, 400*cp.Progress/100, 20, 10)
			dc.Fill()
		}
		y += 40
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) setFace(dc *gg.Context, size float64) error {
	if r.fontPath == "" {
		return nil
	}
	face, err := loadFontFace(r.fontPath, size)
	if err != nil {
		return fmt.Errorf("load font: %w", err)
	}
	dc.SetFontFace(face)
	return nil
}

func barColor(hex string) string {
	if len(hex) == 7 && hex[0] == '#' {
		return hex
	}
	return "#1E40AF"
}

func loadFontFace(fontPath string, size float64) (font.Face, error) {
	fontBytes, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file: %w", err)
	}
	parsedFont, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}
	face := truetype.NewFace(parsedFont, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	return face, nil
}
