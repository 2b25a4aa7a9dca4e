// Package report renders training telemetry to image files.
package report

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrorCurvePoints converts errors-per-epoch into plot points (epoch, errors).
func ErrorCurvePoints(errorsPerEpoch []int) plotter.XYs {
	pts := make(plotter.XYs, len(errorsPerEpoch))
	for i, e := range errorsPerEpoch {
		pts[i].X = float64(i)
		pts[i].Y = float64(e)
	}
	return pts
}

// SaveErrorCurve writes a line chart of misclassifications per epoch. The image format
// follows the file extension (png, svg, pdf, ...).
func SaveErrorCurve(filename, title string, errorsPerEpoch []int) error {
	if len(errorsPerEpoch) == 0 {
		return errors.New("no epochs to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Epoch"
	p.Y.Label.Text = "Errors"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	l, err := plotter.NewLine(ErrorCurvePoints(errorsPerEpoch))
	if err != nil {
		return errors.Wrap(err, "build error curve")
	}
	l.LineStyle.Width = vg.Points(2)
	p.Add(l)

	s, err := plotter.NewScatter(ErrorCurvePoints(errorsPerEpoch))
	if err != nil {
		return errors.Wrap(err, "build error points")
	}
	s.GlyphStyle.Radius = vg.Points(2)
	p.Add(s)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return errors.Wrapf(err, "save plot %s", filename)
	}
	return nil
}
