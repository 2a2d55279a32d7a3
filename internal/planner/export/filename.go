package export

import (
	"fmt"
	"time"
)

const (
	ExtPNG  = "png"
	ExtSVG  = "svg"
	ExtXLSX = "xlsx"
)

// ContentTypes MIME по расширению артефакта.
var ContentTypes = map[string]string{
	ExtPNG:  "image/png",
	ExtSVG:  "image/svg+xml",
	ExtXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Filename floor-plan-YYYY-MM-DD.<ext>, дата в UTC.
func Filename(ext string, at time.Time) string {
	return fmt.Sprintf("floor-plan-%s.%s", at.UTC().Format("2006-01-02"), ext)
}

// Disposition значение заголовка Content-Disposition для скачивания.
func Disposition(ext string, at time.Time) string {
	return fmt.Sprintf(`attachment; filename="%s"`, Filename(ext, at))
}
