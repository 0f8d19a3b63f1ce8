// Package sections holds the registry of administrable back-office areas.
// The order of All is the display order of every permission table.
package sections

import (
	"strings"
	"unicode"
)

type Section struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// Keys are declared next to their names and never derived at runtime.
var registry = []Section{
	{Key: "dashboard", Name: "Dashboard"},
	{Key: "buyurtmalar", Name: "Buyurtmalar"},
	{Key: "mahsulotlar", Name: "Mahsulotlar"},
	{Key: "kategoriyalar", Name: "Kategoriyalar"},
	{Key: "chegirmalar", Name: "Chegirmalar"},
	{Key: "xodimlar", Name: "Xodimlar"},
	{Key: "kuryerlar", Name: "Kuryerlar"},
	{Key: "rollar", Name: "Rollar"},
	{Key: "filiallar", Name: "Filiallar"},
	{Key: "marketing", Name: "Marketing"},
	{Key: "sms_rassilka", Name: "SMS rassilka"},
	{Key: "bannerlar", Name: "Bannerlar"},
	{Key: "promokodlar", Name: "Promokodlar"},
	{Key: "bot_sozlamalari", Name: "Bot sozlamalari"},
	{Key: "veb-sayt_sozlamalari", Name: "Veb-sayt sozlamalari"},
	{Key: "mijozlar", Name: "Mijozlar"},
	{Key: "chat", Name: "Chat"},
	{Key: "profil", Name: "Profil"},
	{Key: "to'lovlar", Name: "To'lovlar"},
	{Key: "hisobotlar", Name: "Hisobotlar"},
	{Key: "analitika", Name: "Analitika"},
	{Key: "sharhlar", Name: "Sharhlar"},
	{Key: "yetkazib_berish", Name: "Yetkazib berish"},
	{Key: "ombor", Name: "Ombor"},
	{Key: "bildirishnomalar", Name: "Bildirishnomalar"},
	{Key: "sozlamalar", Name: "Sozlamalar"},
}

var byKey = func() map[string]int {
	m := make(map[string]int, len(registry))
	for i, s := range registry {
		m[s.Key] = i
	}
	return m
}()

// All returns the registry in display order.
func All() []Section {
	out := make([]Section, len(registry))
	copy(out, registry)
	return out
}

func Len() int {
	return len(registry)
}

func Lookup(key string) (Section, bool) {
	i, ok := byKey[key]
	if !ok {
		return Section{}, false
	}
	return registry[i], true
}

func Has(key string) bool {
	_, ok := byKey[key]
	return ok
}

// Key canonicalizes a display name: lowercase, surrounding whitespace
// trimmed, inner whitespace runs collapsed to a single "_".
func Key(name string) string {
	return strings.Join(strings.FieldsFunc(strings.ToLower(name), unicode.IsSpace), "_")
}
