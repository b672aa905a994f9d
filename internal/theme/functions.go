package theme

import (
	"fmt"

	"github.com/jsvensson/chromakit/internal/color"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
)

// Functions returns the color function library available in palette files.
// Color arguments accept any color string the engine parses, or a palette
// group that has its own color. Color results are canonical hex strings.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"mix":        makeMixFunc(),
		"lighten":    makeAdjustFunc("Lightens", color.Lighten),
		"darken":     makeAdjustFunc("Darkens", color.Darken),
		"saturate":   makeAdjustFunc("Saturates", color.Saturate),
		"desaturate": makeAdjustFunc("Desaturates", color.Desaturate),
		"invert":     makeUnaryFunc("Inverts the red, green and blue channels of a color", color.Invert),
		"grayscale":  makeUnaryFunc("Removes all saturation from a color", color.Grayscale),
		"hex":        makeUnaryFunc("Converts any color to its canonical hex form", color.Parse),
		"rgb":        makeChannelFunc(color.ModelRGB, false),
		"rgba":       makeChannelFunc(color.ModelRGB, true),
		"hsl":        makeChannelFunc(color.ModelHSL, false),
		"hsla":       makeChannelFunc(color.ModelHSL, true),
		"brightness": makeMetricFunc("perceived brightness", color.Info.Brightness),
		"whiteness":  makeMetricFunc("HWB whiteness", color.Info.Whiteness),
		"value":      makeMetricFunc("HSV value", color.Info.Value),
		"blackness":  makeMetricFunc("HWB blackness", color.Info.Blackness),
	}
}

func colorParam(name string) function.Parameter {
	return function.Parameter{
		Name: name,
		Type: cty.DynamicPseudoType,
	}
}

// colorArg resolves a function argument through the engine.
func colorArg(val cty.Value) (color.Info, error) {
	s, err := ResolveColor(val)
	if err != nil {
		return color.Info{}, err
	}
	return color.ParseString(s)
}

func numberArg(val cty.Value) float64 {
	f, _ := val.AsBigFloat().Float64()
	return f
}

func infoVal(c color.Info, err error) (cty.Value, error) {
	if err != nil {
		return cty.NilVal, err
	}
	return cty.StringVal(c.Hex), nil
}

// makeMixFunc creates mix(base, other[, weight[, model]]).
// Usage: mix(palette.love, "white", 0.3) or mix("red", "blue", 0.5, "hsl")
func makeMixFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Blends a color toward another by weight (default 0.5) in rgb or hsl space",
		Params: []function.Parameter{
			colorParam("base"),
			colorParam("other"),
		},
		VarParam: &function.Parameter{
			Name: "options",
			Type: cty.DynamicPseudoType,
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			base, err := colorArg(args[0])
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			other, err := colorArg(args[1])
			if err != nil {
				return cty.NilVal, function.NewArgError(1, err)
			}

			opts, err := mixOptions(args[2:])
			if err != nil {
				return cty.NilVal, err
			}
			return infoVal(color.Mix(base, other, opts...))
		},
	})
}

func mixOptions(args []cty.Value) ([]color.MixOption, error) {
	if len(args) > 2 {
		return nil, fmt.Errorf("mix takes at most 4 arguments, got %d", len(args)+2)
	}

	var opts []color.MixOption
	if len(args) > 0 {
		weight, err := convert.Convert(args[0], cty.Number)
		if err != nil {
			return nil, function.NewArgErrorf(2, "weight must be a number")
		}
		opts = append(opts, color.WithWeight(numberArg(weight)))
	}
	if len(args) > 1 {
		model, err := convert.Convert(args[1], cty.String)
		if err != nil {
			return nil, function.NewArgErrorf(3, "model must be a string")
		}
		m := color.Model(model.AsString())
		if m != color.ModelRGB && m != color.ModelHSL {
			return nil, function.NewArgErrorf(3, "unknown model %q (valid: rgb, hsl)", m)
		}
		opts = append(opts, color.WithModel(m))
	}
	return opts, nil
}

// makeAdjustFunc creates a (color, percentage) function over one of the engine adjusters.
func makeAdjustFunc(verb string, fn func(color.Source, float64) (color.Info, error)) function.Function {
	return function.New(&function.Spec{
		Description: verb + " a color by the given fraction (0.0 to 1.0)",
		Params: []function.Parameter{
			colorParam("color"),
			{
				Name: "percentage",
				Type: cty.Number,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := colorArg(args[0])
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			return infoVal(fn(c, numberArg(args[1])))
		},
	})
}

func makeUnaryFunc(desc string, fn func(color.Source) (color.Info, error)) function.Function {
	return function.New(&function.Spec{
		Description: desc,
		Params:      []function.Parameter{colorParam("color")},
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := colorArg(args[0])
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			return infoVal(fn(c))
		},
	})
}

// makeChannelFunc builds a color from numeric channels: rgb(r, g, b) with
// channels in 0-255, or hsl(h, s, l) with h in degrees and s, l as fractions.
func makeChannelFunc(model color.Model, withAlpha bool) function.Function {
	names := []string{"r", "g", "b"}
	if model == color.ModelHSL {
		names = []string{"h", "s", "l"}
	}
	if withAlpha {
		names = append(names, "a")
	}

	params := make([]function.Parameter, len(names))
	for i, n := range names {
		params[i] = function.Parameter{Name: n, Type: cty.Number}
	}

	return function.New(&function.Spec{
		Description: fmt.Sprintf("Builds a color from %s channels", model),
		Params:      params,
		Type:        function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			values := make([]float64, len(args))
			for i, a := range args {
				values[i] = numberArg(a)
			}
			return infoVal(color.Parse(color.Channels{Model: model, Values: values}))
		},
	})
}

func makeMetricFunc(desc string, fn func(color.Info) float64) function.Function {
	return function.New(&function.Spec{
		Description: "Returns the " + desc + " of a color, from 0 to 1",
		Params:      []function.Parameter{colorParam("color")},
		Type:        function.StaticReturnType(cty.Number),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			c, err := colorArg(args[0])
			if err != nil {
				return cty.NilVal, function.NewArgError(0, err)
			}
			return cty.NumberFloatVal(fn(c)), nil
		},
	})
}
