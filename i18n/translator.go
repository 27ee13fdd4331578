package i18n

import (
	"strings"
	"sync"
)

// Translator retrieves localized titles and details for error templates.
// id names a template (for example "type-conflict" or "expect-string");
// data fills {placeholders} in the detail.
type Translator interface {
	Title(id string) string
	Detail(id string, data map[string]string) string
}

type entry struct{ title, detail string }

var dictionaries = map[string]map[string]entry{
	"en": {
		"invalid-value":             {"Invalid Value", "The value is invalid."},
		"expect-string":             {"", "Expecting a string value."},
		"expect-number":             {"", "Expecting a number value."},
		"expect-integer":            {"", "Expecting an integer value."},
		"expect-float":              {"", "Expecting a float value."},
		"expect-boolean":            {"", "Expecting a boolean value."},
		"expect-array":              {"", "Expecting an array value."},
		"expect-object":             {"", "Expecting an object value."},
		"expect-date":               {"", "Expecting a date value."},
		"expect-identifier":         {"", "Expecting a resource identifier object."},
		"required":                  {"Required Member", "The member {key} is required."},
		"unrecognised-key":          {"Unrecognised Member", "The member {key} is not recognised."},
		"required-attribute":        {"Required Attribute", "The attribute {key} is required."},
		"unrecognised-attribute":    {"Unrecognised Attribute", "The attribute {key} is not recognised."},
		"required-relationship":     {"Required Relationship", "The relationship {key} is required."},
		"unrecognised-relationship": {"Unrecognised Relationship", "The relationship {key} is not recognised."},
		"type-mismatch":             {"Unsupported Type", "Resource type {actual} is not one of: {expected}."},
		"type-conflict":             {"Type Conflict", "Resource type {actual} is not supported by this endpoint; expecting {expected}."},
		"id-conflict":               {"Resource ID Conflict", "Resource id {actual} does not match the endpoint id {expected}."},
		"missing-relationship-data": {"Required Relationship", "The relationship must have a data member."},
		"has-one-expected":          {"Invalid Relationship", "The relationship must be a has-one relationship."},
		"has-many-expected":         {"Invalid Relationship", "The relationship must be a has-many relationship."},
		"relationship-empty":        {"Invalid Relationship", "The relationship must not be empty."},
		"not-found":                 {"Invalid Relationship", "The related resource {type}:{id} does not exist."},
		"not-acceptable":            {"Invalid Relationship", "The related resource {type}:{id} is not acceptable."},
		"missing-data":              {"Missing Data Member", "The document must have a top-level data member."},
		"duplicate-key":             {"Duplicate Member", "The member {key} is duplicated."},
		"parse-error":               {"Invalid JSON", "The request body could not be parsed: {reason}."},
		"dependency-unavailable":    {"Service Unavailable", "Could not verify the related resource {type}:{id}."},
	},
	"ja": {
		"invalid-value":             {"不正な値", "値が不正です。"},
		"expect-string":             {"", "文字列である必要があります。"},
		"expect-number":             {"", "数値である必要があります。"},
		"expect-integer":            {"", "整数である必要があります。"},
		"expect-float":              {"", "浮動小数点数である必要があります。"},
		"expect-boolean":            {"", "真偽値である必要があります。"},
		"expect-array":              {"", "配列である必要があります。"},
		"expect-object":             {"", "オブジェクトである必要があります。"},
		"expect-date":               {"", "日付である必要があります。"},
		"expect-identifier":         {"", "リソース識別子オブジェクトである必要があります。"},
		"required":                  {"必須メンバー", "メンバー {key} は必須です。"},
		"unrecognised-key":          {"未知のメンバー", "メンバー {key} は認識されません。"},
		"required-attribute":        {"必須属性", "属性 {key} は必須です。"},
		"unrecognised-attribute":    {"未知の属性", "属性 {key} は認識されません。"},
		"required-relationship":     {"必須リレーションシップ", "リレーションシップ {key} は必須です。"},
		"unrecognised-relationship": {"未知のリレーションシップ", "リレーションシップ {key} は認識されません。"},
		"type-mismatch":             {"未対応の型", "リソース型 {actual} は {expected} のいずれでもありません。"},
		"type-conflict":             {"型の競合", "リソース型 {actual} はこのエンドポイントでは扱えません（期待値: {expected}）。"},
		"id-conflict":               {"IDの競合", "リソースID {actual} がエンドポイントのID {expected} と一致しません。"},
		"missing-relationship-data": {"必須リレーションシップ", "リレーションシップには data メンバーが必要です。"},
		"has-one-expected":          {"不正なリレーションシップ", "to-one リレーションシップである必要があります。"},
		"has-many-expected":         {"不正なリレーションシップ", "to-many リレーションシップである必要があります。"},
		"relationship-empty":        {"不正なリレーションシップ", "リレーションシップを空にすることはできません。"},
		"not-found":                 {"不正なリレーションシップ", "関連リソース {type}:{id} は存在しません。"},
		"not-acceptable":            {"不正なリレーションシップ", "関連リソース {type}:{id} は受け付けられません。"},
		"missing-data":              {"data メンバーの欠落", "ドキュメントにはトップレベルの data メンバーが必要です。"},
		"duplicate-key":             {"メンバーの重複", "メンバー {key} が重複しています。"},
		"parse-error":               {"不正なJSON", "リクエストボディを解析できません: {reason}。"},
		"dependency-unavailable":    {"サービス利用不可", "関連リソース {type}:{id} を確認できませんでした。"},
	},
}

// dictTranslator is the built-in dictionary-based Translator. Missing
// entries fall back to English, then to the id itself.
type dictTranslator struct{ lang string }

func (t dictTranslator) lookup(id string) entry {
	if e, ok := dictionaries[t.lang][id]; ok {
		return e
	}
	if e, ok := dictionaries["en"][id]; ok {
		return e
	}
	return entry{title: id, detail: id}
}

func (t dictTranslator) Title(id string) string {
	e := t.lookup(id)
	if e.title == "" {
		// detail-only templates share the generic invalid value title
		return t.lookup("invalid-value").title
	}
	return e.title
}

func (t dictTranslator) Detail(id string, data map[string]string) string {
	return Interpolate(t.lookup(id).detail, data)
}

// Interpolate replaces {name} placeholders with data values. Unknown
// placeholders are left in place.
func Interpolate(tmpl string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	pairs := make([]string, 0, len(data)*2)
	for k, v := range data {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                           = sync.RWMutex{}
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if _, ok := dictionaries[lang]; !ok {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// Languages lists the built-in dictionaries.
func Languages() []string { return []string{"en", "ja"} }

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). nil restores English.
func SetTranslator(tr Translator) {
	mu.Lock()
	defer mu.Unlock()
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

func current() Translator {
	mu.RLock()
	defer mu.RUnlock()
	return currentTranslator
}

// Title fetches a title using the current Translator.
func Title(id string) string { return current().Title(id) }

// Detail fetches an interpolated detail using the current Translator.
func Detail(id string, data map[string]string) string { return current().Detail(id, data) }
