package pipeline

import (
	"github.com/mlenz/rosette/pkg/errors"
	"github.com/mlenz/rosette/pkg/rose"
	"github.com/mlenz/rosette/pkg/rose/sink"
)

// RenderFromLayout runs the render stage without caching, producing one
// artifact per requested format.
func RenderFromLayout(lf rose.LayoutFile, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts, err := sink.FileOptions(lf)
	if err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(lf, svgOpts, format, opts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(lf rose.LayoutFile, svgOpts []sink.SVGOption, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(lf.Layout, svgOpts...), nil
	case FormatPNG:
		pngOpts := []sink.PNGOption{
			sink.WithPNGSVGOptions(svgOpts...),
			sink.WithScale(opts.PNGScale),
		}
		if opts.VectorPNG {
			pngOpts = append(pngOpts, sink.WithVector())
		}
		return sink.RenderPNG(lf.Layout, pngOpts...)
	case FormatPDF:
		return sink.RenderPDF(lf.Layout, sink.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return rose.MarshalLayout(lf)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}
