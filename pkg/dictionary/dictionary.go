package dictionary

import (
	"bytes"
	"encoding/json"
	"html/template"
	"os"
	"slices"

	"github.com/leonid6372/stock-trader/pkg/format"
	"github.com/leonid6372/stock-trader/pkg/log"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const DefaultLanguage = "en"

type Dictionary struct {
	dictionary map[string]map[string]string // map[language_code]map[key]value

	digitSeparator   string
	decimalSeparator string
}

// New loads a dictionary from the JSON file at path.
func New(path string) (*Dictionary, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var dictionary map[string]map[string]string
	if err := json.Unmarshal(file, &dictionary); err != nil {
		return nil, err
	}

	return &Dictionary{
		dictionary:       dictionary,
		digitSeparator:   " ",
		decimalSeparator: ".",
	}, nil
}

// Languages returns the language codes in alphabetical order.
func (d *Dictionary) Languages() []string {
	langs := make([]string, 0, len(d.dictionary))

	for lang := range d.dictionary {
		langs = append(langs, lang)
	}

	slices.Sort(langs)

	return langs
}

func (d *Dictionary) HasLanguage(lang string) bool {
	_, ok := d.dictionary[lang]
	return ok
}

// Text renders the template stored under key for lang. Unknown languages fall
// back to DefaultLanguage. Numeric values are pretty-printed.
func (d *Dictionary) Text(lang, key string, values ...map[string]any) string {
	if !d.HasLanguage(lang) {
		lang = DefaultLanguage
	}

	text, ok := d.dictionary[lang][key]
	if !ok {
		log.Error("Text: value not found", zap.String("lang", lang), zap.String("key", key))
		return ""
	}

	tmpl, err := template.New(key).Parse(text)
	if err != nil {
		return text
	}

	valuesMap := make(map[string]any)
	if len(values) > 0 {
		// format numeric types in values
		for key, value := range values[0] {
			switch v := value.(type) {
			case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
				valuesMap[key] = format.PrettyNumber(v, d.digitSeparator, d.decimalSeparator, false)
			case decimal.Decimal:
				valuesMap[key] = format.PrettyNumber(v, d.digitSeparator, d.decimalSeparator, false)
			default:
				valuesMap[key] = value
			}
		}
	}

	byteText := new(bytes.Buffer)
	if err = tmpl.Execute(byteText, valuesMap); err != nil {
		log.Error("Text: failed to execute template", zap.Error(err))
		return text
	}
	text = byteText.String()

	return text
}
