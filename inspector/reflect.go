// Package inspector draws a live readout of one ship's components, driven
// by `inspect` struct tags on the component types.
package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Widget types for rendering fields.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetAngle
	WidgetBool
	WidgetVec
	WidgetSkip
)

// Field represents a component field with rendering hints.
type Field struct {
	Name    string
	Value   interface{}
	Widget  Widget
	Options map[string]string
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option:value...]"`
// Examples:
//
//	`inspect:"bar,max:8"`
//	`inspect:"bar,maxfield:MaxHitPoints"`
//	`inspect:"angle"`
//	`inspect:"label,fmt:%.1f"`
//	`inspect:"vec"`
//	`inspect:"skip"`
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)

	if tag == "" {
		return WidgetAuto, options
	}

	parts := strings.Split(tag, ",")

	var widget Widget
	switch strings.TrimSpace(parts[0]) {
	case "label":
		widget = WidgetLabel
	case "bar":
		widget = WidgetBar
	case "angle":
		widget = WidgetAngle
	case "bool":
		widget = WidgetBool
	case "vec":
		widget = WidgetVec
	case "skip":
		widget = WidgetSkip
	default:
		widget = WidgetAuto
	}

	for _, part := range parts[1:] {
		kv := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(kv) == 2 {
			options[kv[0]] = kv[1]
		}
	}

	return widget, options
}

// ExtractFields uses reflection to extract the visible fields of a
// component. A maxfield option is resolved against the sibling field it
// names and stored as max.
func ExtractFields(component interface{}) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field

	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		fv := v.Field(i)

		if !sf.IsExported() {
			continue
		}

		widget, options := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}

		if name, ok := options["maxfield"]; ok {
			if mf := v.FieldByName(name); mf.IsValid() && mf.CanInterface() {
				if m, ok := GetFloatValue(mf.Interface()); ok {
					options["max"] = strconv.FormatFloat(float64(m), 'g', -1, 32)
				}
			}
		}

		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   fv.Interface(),
			Widget:  widget,
			Options: options,
		})
	}

	return fields
}

// autoDetectWidget chooses a widget based on the field type.
func autoDetectWidget(v reflect.Value) Widget {
	switch v.Kind() {
	case reflect.Bool:
		return WidgetBool
	case reflect.Struct:
		if _, ok := GetVec(v.Interface()); ok {
			return WidgetVec
		}
		return WidgetLabel
	default:
		return WidgetLabel
	}
}

// FormatValue formats a field value as a string.
func FormatValue(value interface{}, fmtStr string) string {
	if fmtStr == "" {
		switch v := value.(type) {
		case float32:
			return fmt.Sprintf("%.2f", v)
		case float64:
			return fmt.Sprintf("%.2f", v)
		case fmt.Stringer:
			return v.String()
		default:
			return fmt.Sprintf("%v", value)
		}
	}
	return fmt.Sprintf(fmtStr, value)
}

// GetMax returns the max option as a float, defaulting to 1.0.
func GetMax(options map[string]string) float32 {
	if maxStr, ok := options["max"]; ok {
		if max, err := strconv.ParseFloat(maxStr, 32); err == nil && max > 0 {
			return float32(max)
		}
	}
	return 1.0
}

// GetFloatValue extracts a float32 from various types.
func GetFloatValue(value interface{}) (float32, bool) {
	switch v := value.(type) {
	case float32:
		return v, true
	case float64:
		return float32(v), true
	case int:
		return float32(v), true
	case int32:
		return float32(v), true
	case int64:
		return float32(v), true
	case uint32:
		return float32(v), true
	default:
		return 0, false
	}
}

// GetVec extracts the X and Y of any struct with float64 fields by those
// names, such as r2.Vec.
func GetVec(value interface{}) ([2]float64, bool) {
	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Struct {
		return [2]float64{}, false
	}
	x, y := v.FieldByName("X"), v.FieldByName("Y")
	if !x.IsValid() || !y.IsValid() || x.Kind() != reflect.Float64 || y.Kind() != reflect.Float64 {
		return [2]float64{}, false
	}
	return [2]float64{x.Float(), y.Float()}, true
}
