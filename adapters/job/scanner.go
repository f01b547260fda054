// Package job loads classification job definitions from HCL files.
//
// A job file declares the AOI, the acquisition window, the scene
// cloud-cover threshold and the training polygons for each class:
//
//	job "nairobi-2023" {
//	  aoi {
//	    west  = 36.65
//	    south = -1.40
//	    east  = 37.05
//	    north = -1.15
//	  }
//	  dates {
//	    start = "2023-01-01"
//	    end   = "2023-12-31"
//	  }
//	  max_cloud_percent = 10.0
//
//	  class "water" {
//	    label = 0
//	    polygon { ring = [[36.80, -1.30], [36.81, -1.30], [36.81, -1.29]] }
//	  }
//	}
package job

import (
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/Jade2451/LULC-ISA/core/types"
	"github.com/Jade2451/LULC-ISA/internal/errors"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "job", LabelNames: []string{"name"}},
	},
}

var jobSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "max_cloud_percent", Required: true},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "aoi"},
		{Type: "dates"},
		{Type: "class", LabelNames: []string{"name"}},
	},
}

var aoiSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "west", Required: true},
		{Name: "south", Required: true},
		{Name: "east", Required: true},
		{Name: "north", Required: true},
	},
}

var datesSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "start", Required: true},
		{Name: "end", Required: true},
	},
}

var classSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "label", Required: true},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "polygon"},
	},
}

var polygonSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "ring", Required: true},
	},
}

// LoadFile parses and validates one job file.
func LoadFile(path string) (*types.Job, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeInput, err, "cannot read job file %s", path)
	}
	return Load(src, path)
}

// Load parses and validates a job definition from source bytes. The
// filename is used only for diagnostics.
func Load(src []byte, filename string) (*types.Job, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagErr("invalid job file syntax", diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, diagErr("invalid job file structure", diags)
	}
	if len(content.Blocks) != 1 {
		return nil, errors.Inputf("job file must contain exactly one job block, found %d", len(content.Blocks))
	}

	j, err := decodeJob(content.Blocks[0])
	if err != nil {
		return nil, err
	}
	if err := j.Validate(); err != nil {
		return nil, err
	}
	return j, nil
}

func decodeJob(block *hcl.Block) (*types.Job, error) {
	j := &types.Job{Name: block.Labels[0]}

	content, diags := block.Body.Content(jobSchema)
	if diags.HasErrors() {
		return nil, diagErr("invalid job block", diags)
	}

	var err error
	if j.MaxCloudPercent, err = attrFloat(content.Attributes["max_cloud_percent"]); err != nil {
		return nil, err
	}

	var sawAOI, sawDates bool
	for _, b := range content.Blocks {
		switch b.Type {
		case "aoi":
			if j.AOI, err = decodeAOI(b); err != nil {
				return nil, err
			}
			sawAOI = true
		case "dates":
			if j.Dates, err = decodeDates(b); err != nil {
				return nil, err
			}
			sawDates = true
		case "class":
			tc, err := decodeClass(b)
			if err != nil {
				return nil, err
			}
			j.Classes = append(j.Classes, tc)
		}
	}
	if !sawAOI {
		return nil, errors.Input("job has no aoi block")
	}
	if !sawDates {
		return nil, errors.Input("job has no dates block")
	}
	return j, nil
}

func decodeAOI(block *hcl.Block) (types.AOI, error) {
	content, diags := block.Body.Content(aoiSchema)
	if diags.HasErrors() {
		return types.AOI{}, diagErr("invalid aoi block", diags)
	}
	var a types.AOI
	var err error
	if a.West, err = attrFloat(content.Attributes["west"]); err != nil {
		return a, err
	}
	if a.South, err = attrFloat(content.Attributes["south"]); err != nil {
		return a, err
	}
	if a.East, err = attrFloat(content.Attributes["east"]); err != nil {
		return a, err
	}
	if a.North, err = attrFloat(content.Attributes["north"]); err != nil {
		return a, err
	}
	return a, nil
}

func decodeDates(block *hcl.Block) (types.DateRange, error) {
	content, diags := block.Body.Content(datesSchema)
	if diags.HasErrors() {
		return types.DateRange{}, diagErr("invalid dates block", diags)
	}
	start, err := attrString(content.Attributes["start"])
	if err != nil {
		return types.DateRange{}, err
	}
	end, err := attrString(content.Attributes["end"])
	if err != nil {
		return types.DateRange{}, err
	}
	return types.ParseDateRange(start, end)
}

func decodeClass(block *hcl.Block) (types.TrainingClass, error) {
	tc := types.TrainingClass{Name: block.Labels[0]}

	content, diags := block.Body.Content(classSchema)
	if diags.HasErrors() {
		return tc, diagErr("invalid class block", diags)
	}

	label, err := attrInt(content.Attributes["label"])
	if err != nil {
		return tc, err
	}
	tc.Label = types.ClassLabel(label)

	for _, b := range content.Blocks {
		p, err := decodePolygon(b)
		if err != nil {
			return tc, errors.Wrapf(errors.TypeParsing, err, "class %q", tc.Name)
		}
		tc.Polygons = append(tc.Polygons, p)
	}
	return tc, nil
}

func decodePolygon(block *hcl.Block) (types.Polygon, error) {
	content, diags := block.Body.Content(polygonSchema)
	if diags.HasErrors() {
		return types.Polygon{}, diagErr("invalid polygon block", diags)
	}

	val, diags := content.Attributes["ring"].Expr.Value(nil)
	if diags.HasErrors() {
		return types.Polygon{}, diagErr("invalid polygon ring", diags)
	}
	if !val.CanIterateElements() {
		return types.Polygon{}, errors.Input("polygon ring must be a list of [lon, lat] pairs")
	}

	var p types.Polygon
	for it := val.ElementIterator(); it.Next(); {
		_, pair := it.Element()
		vertex, err := decodeVertex(pair)
		if err != nil {
			return types.Polygon{}, err
		}
		p.Ring = append(p.Ring, vertex)
	}
	return p, nil
}

func decodeVertex(pair cty.Value) ([2]float64, error) {
	var out [2]float64
	if !pair.CanIterateElements() || pair.LengthInt() != 2 {
		return out, errors.Input("polygon ring vertex must be a [lon, lat] pair")
	}
	i := 0
	for it := pair.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.Type() != cty.Number {
			return out, errors.Input("polygon ring coordinates must be numbers")
		}
		f, _ := v.AsBigFloat().Float64()
		out[i] = f
		i++
	}
	return out, nil
}

func attrFloat(attr *hcl.Attribute) (float64, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return 0, diagErr("invalid attribute "+attr.Name, diags)
	}
	if val.Type() != cty.Number {
		return 0, errors.Inputf("attribute %s must be a number", attr.Name)
	}
	f, _ := val.AsBigFloat().Float64()
	return f, nil
}

func attrInt(attr *hcl.Attribute) (int, error) {
	f, err := attrFloat(attr)
	if err != nil {
		return 0, err
	}
	n := int(f)
	if float64(n) != f {
		return 0, errors.Inputf("attribute %s must be an integer", attr.Name)
	}
	return n, nil
}

func attrString(attr *hcl.Attribute) (string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", diagErr("invalid attribute "+attr.Name, diags)
	}
	if val.Type() != cty.String {
		return "", errors.Inputf("attribute %s must be a string", attr.Name)
	}
	return val.AsString(), nil
}

func diagErr(message string, diags hcl.Diagnostics) error {
	e := errors.Parsing(message, diags)
	for i, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		if d.Subject != nil {
			e = e.WithContext("location", d.Subject.String())
		}
		if i >= 2 {
			break
		}
	}
	return e
}
