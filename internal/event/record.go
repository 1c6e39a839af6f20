package event

// Well-known record field names. Mapping configuration may add arbitrary
// fields beyond these; enrichment only ever touches the ones listed here.
const (
	FieldGUID            = "guid"
	FieldStartTime       = "startTime"
	FieldEndTime         = "endTime"
	FieldURLRef          = "urlRef"
	FieldSeries          = "series"
	FieldContent         = "content"
	FieldSpeaker         = "speaker"
	FieldLocation        = "location"
	FieldTitle           = "title"
	FieldCancelled       = "cancelled"
	FieldBannerImage     = "bannerImage"
	FieldItemType        = "itemType"
	FieldRawDetails      = "rawEventDetails"
	FieldExtractAbstract = "rawExtractAbstract"
	FieldExtractBio      = "rawExtractBio"
)

// Location is the nested location object parsed from the raw LOCATION string.
type Location struct {
	Name   string `json:"name" yaml:"name"`
	ID     string `json:"id" yaml:"id"`
	Detail string `json:"detail" yaml:"detail"`
}

// Record is one output event: a mapping from field name to value. Values are
// strings except for the nested location object.
type Record map[string]any

// GetString returns the string value of a field, or "" when the field is
// absent or not a string.
func (r Record) GetString(key string) string {
	v, ok := r[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

// SetString assigns a string value to a field.
func (r Record) SetString(key, value string) {
	r[key] = value
}

// Has reports whether the field exists, regardless of its value.
func (r Record) Has(key string) bool {
	_, ok := r[key]
	return ok
}
