package aseanim

import (
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// Sheet is the schema-shaped form of an Aseprite JSON export. ParseSheet
// guarantees every required field was present and well-typed; it does not
// check that tags make sense against the frame list (see Sheet.Animations).
type Sheet struct {
	Frames []SheetFrame
	Meta   SheetMeta
}

// SheetRect is a pixel rectangle as written in the export.
type SheetRect struct {
	X, Y, W, H int
}

// SheetSize is a pixel size as written in the export.
type SheetSize struct {
	W, H int
}

// SheetFrame is one entry of the "frames" collection. Array and hash exports
// both normalize to this type.
type SheetFrame struct {
	// Name is the frame's "filename" field, or its key when the export uses
	// the hash layout and omits filename. Empty for unnamed array entries.
	Name             string
	Frame            SheetRect
	Rotated          bool
	Trimmed          bool
	SpriteSourceSize SheetRect
	SourceSize       SheetSize
	Duration         int // milliseconds
}

// SheetTag is one entry of meta.frameTags.
type SheetTag struct {
	Name      string
	From, To  int
	Direction string
}

// SheetMeta is the export's "meta" object.
type SheetMeta struct {
	App       string
	Version   string
	Image     string
	Format    string  // optional
	Size      SheetSize
	Scale     float64 // optional, defaults to 1
	FrameTags []SheetTag
}

// ParseSheet decodes an Aseprite JSON export. Every field is required except
// the frame filename, meta.format, meta.scale and meta.frameTags; a missing
// or mistyped field returns a *SchemaError. Unknown fields are ignored.
func ParseSheet(data []byte) (*Sheet, error) {
	if !gjson.ValidBytes(data) {
		return nil, schemaErrorf("$", "invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, schemaErrorf("$", "document must be an object")
	}

	frames, err := required(root, "frames", "frames")
	if err != nil {
		return nil, err
	}
	entries, err := frameEntries(frames)
	if err != nil {
		return nil, err
	}

	sheet := &Sheet{Frames: make([]SheetFrame, 0, len(entries))}
	for _, e := range entries {
		f, err := parseFrame(e)
		if err != nil {
			return nil, err
		}
		sheet.Frames = append(sheet.Frames, f)
	}

	meta, err := requiredObject(root, "meta", "meta")
	if err != nil {
		return nil, err
	}
	if sheet.Meta, err = parseMeta(meta); err != nil {
		return nil, err
	}
	return sheet, nil
}

// frameEntry is a frame body paired with its hash key (empty for array
// entries). Both export layouts reduce to an ordered list of these.
type frameEntry struct {
	key  string
	path string
	body gjson.Result
}

// frameEntries flattens the "frames" value, either [ {...}, ... ] or
// { "name": {...}, ... }, into document order.
func frameEntries(frames gjson.Result) ([]frameEntry, error) {
	var entries []frameEntry
	switch {
	case frames.IsArray():
		i := 0
		frames.ForEach(func(_, v gjson.Result) bool {
			entries = append(entries, frameEntry{path: "frames." + strconv.Itoa(i), body: v})
			i++
			return true
		})
	case frames.IsObject():
		// ForEach walks object members in document order, which is the
		// frame order of a hash export.
		frames.ForEach(func(k, v gjson.Result) bool {
			entries = append(entries, frameEntry{key: k.String(), path: "frames." + k.String(), body: v})
			return true
		})
	default:
		return nil, schemaErrorf("frames", "must be an array or an object")
	}
	return entries, nil
}

func parseFrame(e frameEntry) (SheetFrame, error) {
	var f SheetFrame
	if !e.body.IsObject() {
		return f, schemaErrorf(e.path, "frame must be an object")
	}

	f.Name = e.key
	if name, ok, err := optionalString(e.body, "filename", e.path+".filename"); err != nil {
		return f, err
	} else if ok {
		f.Name = name
	}

	var err error
	if f.Frame, err = rectField(e.body, "frame", e.path+".frame"); err != nil {
		return f, err
	}
	if f.Frame.W <= 0 || f.Frame.H <= 0 {
		return f, schemaErrorf(e.path+".frame", "width and height must be positive, got %dx%d", f.Frame.W, f.Frame.H)
	}
	if f.Rotated, err = boolField(e.body, "rotated", e.path+".rotated"); err != nil {
		return f, err
	}
	if f.Trimmed, err = boolField(e.body, "trimmed", e.path+".trimmed"); err != nil {
		return f, err
	}
	if f.SpriteSourceSize, err = rectField(e.body, "spriteSourceSize", e.path+".spriteSourceSize"); err != nil {
		return f, err
	}
	if f.SourceSize, err = sizeField(e.body, "sourceSize", e.path+".sourceSize"); err != nil {
		return f, err
	}
	if f.Duration, err = intField(e.body, "duration", e.path+".duration"); err != nil {
		return f, err
	}
	if f.Duration < 0 {
		return f, schemaErrorf(e.path+".duration", "must not be negative, got %d", f.Duration)
	}
	return f, nil
}

func parseMeta(meta gjson.Result) (SheetMeta, error) {
	m := SheetMeta{Scale: 1}
	var err error
	if m.App, err = stringField(meta, "app", "meta.app"); err != nil {
		return m, err
	}
	if m.Version, err = stringField(meta, "version", "meta.version"); err != nil {
		return m, err
	}
	if m.Image, err = stringField(meta, "image", "meta.image"); err != nil {
		return m, err
	}
	if m.Format, _, err = optionalString(meta, "format", "meta.format"); err != nil {
		return m, err
	}
	if m.Size, err = sizeField(meta, "size", "meta.size"); err != nil {
		return m, err
	}
	if m.Scale, err = parseScale(meta.Get("scale")); err != nil {
		return m, err
	}

	tags := meta.Get("frameTags")
	if !present(tags) {
		return m, nil
	}
	if !tags.IsArray() {
		return m, schemaErrorf("meta.frameTags", "must be an array")
	}
	i := 0
	tags.ForEach(func(_, v gjson.Result) bool {
		var tag SheetTag
		tag, err = parseTag(v, "meta.frameTags."+strconv.Itoa(i))
		if err != nil {
			return false
		}
		m.FrameTags = append(m.FrameTags, tag)
		i++
		return true
	})
	return m, err
}

// parseScale accepts a number or a numeric string; Aseprite writes
// "scale": "1".
func parseScale(v gjson.Result) (float64, error) {
	if !present(v) {
		return 1, nil
	}
	var scale float64
	switch v.Type {
	case gjson.Number:
		scale = v.Num
	case gjson.String:
		s, err := strconv.ParseFloat(v.Str, 64)
		if err != nil {
			return 0, schemaErrorf("meta.scale", "not a number: %q", v.Str)
		}
		scale = s
	default:
		return 0, schemaErrorf("meta.scale", "must be a number")
	}
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return 0, schemaErrorf("meta.scale", "must be positive, got %v", scale)
	}
	return scale, nil
}

func parseTag(v gjson.Result, path string) (SheetTag, error) {
	var t SheetTag
	if !v.IsObject() {
		return t, schemaErrorf(path, "frame tag must be an object")
	}
	var err error
	if t.Name, err = stringField(v, "name", path+".name"); err != nil {
		return t, err
	}
	if t.From, err = intField(v, "from", path+".from"); err != nil {
		return t, err
	}
	if t.To, err = intField(v, "to", path+".to"); err != nil {
		return t, err
	}
	if t.Direction, err = stringField(v, "direction", path+".direction"); err != nil {
		return t, err
	}
	return t, nil
}

// --- field helpers ---

// present reports whether v exists and is not JSON null.
func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

func required(obj gjson.Result, key, path string) (gjson.Result, error) {
	v := obj.Get(key)
	if !present(v) {
		return v, schemaErrorf(path, "required field missing")
	}
	return v, nil
}

func requiredObject(obj gjson.Result, key, path string) (gjson.Result, error) {
	v, err := required(obj, key, path)
	if err != nil {
		return v, err
	}
	if !v.IsObject() {
		return v, schemaErrorf(path, "must be an object")
	}
	return v, nil
}

func stringField(obj gjson.Result, key, path string) (string, error) {
	v, err := required(obj, key, path)
	if err != nil {
		return "", err
	}
	if v.Type != gjson.String {
		return "", schemaErrorf(path, "must be a string")
	}
	return v.Str, nil
}

func optionalString(obj gjson.Result, key, path string) (string, bool, error) {
	v := obj.Get(key)
	if !present(v) {
		return "", false, nil
	}
	if v.Type != gjson.String {
		return "", false, schemaErrorf(path, "must be a string")
	}
	return v.Str, true, nil
}

func intField(obj gjson.Result, key, path string) (int, error) {
	v, err := required(obj, key, path)
	if err != nil {
		return 0, err
	}
	if v.Type != gjson.Number || v.Num != math.Trunc(v.Num) ||
		v.Num > math.MaxInt32 || v.Num < math.MinInt32 {
		return 0, schemaErrorf(path, "must be an integer")
	}
	return int(v.Num), nil
}

func boolField(obj gjson.Result, key, path string) (bool, error) {
	v, err := required(obj, key, path)
	if err != nil {
		return false, err
	}
	switch v.Type {
	case gjson.True:
		return true, nil
	case gjson.False:
		return false, nil
	}
	return false, schemaErrorf(path, "must be a boolean")
}

func rectField(obj gjson.Result, key, path string) (SheetRect, error) {
	var r SheetRect
	v, err := requiredObject(obj, key, path)
	if err != nil {
		return r, err
	}
	if r.X, err = intField(v, "x", path+".x"); err != nil {
		return r, err
	}
	if r.Y, err = intField(v, "y", path+".y"); err != nil {
		return r, err
	}
	if r.W, err = intField(v, "w", path+".w"); err != nil {
		return r, err
	}
	if r.H, err = intField(v, "h", path+".h"); err != nil {
		return r, err
	}
	return r, nil
}

func sizeField(obj gjson.Result, key, path string) (SheetSize, error) {
	var s SheetSize
	v, err := requiredObject(obj, key, path)
	if err != nil {
		return s, err
	}
	if s.W, err = intField(v, "w", path+".w"); err != nil {
		return s, err
	}
	if s.H, err = intField(v, "h", path+".h"); err != nil {
		return s, err
	}
	return s, nil
}
