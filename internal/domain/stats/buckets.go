package stats

import "strings"

// The tables below translate host identifiers (item shortnames and prefab
// names) into counter buckets. Matching is ordered: the first rule whose
// substring appears in the identifier wins, so broader substrings must come
// after narrower ones.

type substringRule struct {
	needles []string
	bucket  string
}

func matchRules(rules []substringRule, name string) (string, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	for _, r := range rules {
		for _, n := range r.needles {
			if strings.Contains(name, n) {
				return r.bucket, true
			}
		}
	}
	return "", false
}

// resourceBuckets maps gatherable item shortnames to gather buckets. Exact
// match; unmapped items are ignored rather than bucketed.
var resourceBuckets = map[string]string{
	"wood":         "wood",
	"stones":       "stone",
	"metal.ore":    "metal",
	"hq.metal.ore": "hq",
	"scrap":        "scrap",
}

func ResourceBucket(shortname string) (string, bool) {
	b, ok := resourceBuckets[strings.ToLower(strings.TrimSpace(shortname))]
	return b, ok
}

var ammoRules = []substringRule{
	{needles: []string{"pistol"}, bucket: "pistol"},
	{needles: []string{"rifle"}, bucket: "rifle"},
	{needles: []string{"shotgun", "handmade.shell"}, bucket: "shotgun"},
	{needles: []string{"nailgun", "nails"}, bucket: "nail"},
	{needles: []string{"arrow", "bolt"}, bucket: "arrow"},
	{needles: []string{"rocket"}, bucket: "rocket"},
}

// AmmoBucket classifies an ammo item shortname. Unmatched ammo falls to
// "other" so every shot is still counted somewhere.
func AmmoBucket(shortname string) string {
	if b, ok := matchRules(ammoRules, shortname); ok {
		return b
	}
	return "other"
}

var rocketRules = []substringRule{
	{needles: []string{"hv"}, bucket: "hv"},
	{needles: []string{"fire", "incen"}, bucket: "incendiary"},
	{needles: []string{"smoke"}, bucket: "smoke"},
}

// RocketKind classifies rocket ammo. The plain rocket is the baseline kind.
func RocketKind(shortname string) string {
	if k, ok := matchRules(rocketRules, shortname); ok {
		return k
	}
	return "basic"
}

var explosiveRules = []substringRule{
	{needles: []string{"grenade.f1"}, bucket: "f1"},
	{needles: []string{"beancan"}, bucket: "beancan"},
	{needles: []string{"satchel"}, bucket: "satchel"},
	{needles: []string{"explosive.timed", "c4"}, bucket: "c4"},
}

func ExplosiveKind(prefab string) string {
	if k, ok := matchRules(explosiveRules, prefab); ok {
		return k
	}
	return "other"
}

var barrelNeedles = []string{"barrel", "oil_barrel", "loot-barrel"}

func IsBarrel(prefab string) bool {
	_, ok := matchRules([]substringRule{{needles: barrelNeedles, bucket: "barrel"}}, prefab)
	return ok
}

func IsBradley(prefab string) bool {
	_, ok := matchRules([]substringRule{{needles: []string{"bradley"}, bucket: "bradley"}}, prefab)
	return ok
}

func IsHeli(prefab string) bool {
	_, ok := matchRules([]substringRule{{needles: []string{"patrolhelicopter", "heli"}, bucket: "heli"}}, prefab)
	return ok
}

var animalRules = []substringRule{
	{needles: []string{"bear"}, bucket: "bear"},
	{needles: []string{"boar"}, bucket: "boar"},
	{needles: []string{"wolf"}, bucket: "wolf"},
	{needles: []string{"stag"}, bucket: "stag"},
	{needles: []string{"chicken"}, bucket: "chicken"},
	{needles: []string{"horse"}, bucket: "horse"},
	{needles: []string{"shark"}, bucket: "shark"},
}

// AnimalSpecies resolves a species bucket from a victim prefab. The false
// return means the prefab is not a known animal at all.
func AnimalSpecies(prefab string) (string, bool) {
	return matchRules(animalRules, prefab)
}

var npcRules = []substringRule{
	{needles: []string{"scientist"}, bucket: "scientist"},
	{needles: []string{"dweller"}, bucket: "dweller"},
	{needles: []string{"scarecrow"}, bucket: "scarecrow"},
}

// NPCSubtype resolves a named NPC bucket; callers fall back to kills.npc when
// the prefab matches nothing here.
func NPCSubtype(prefab string) (string, bool) {
	return matchRules(npcRules, prefab)
}

var lootRules = []substringRule{
	{needles: []string{"supply_drop"}, bucket: "airdrop"},
	{needles: []string{"hackable", "crate_elite_hackable"}, bucket: "hackedcrate"},
}

// LootKind classifies one-time loot containers.
func LootKind(prefab string) (string, bool) {
	return matchRules(lootRules, prefab)
}

var apparatusRules = []substringRule{
	{needles: []string{"spinningwheel", "bigwheel"}, bucket: "bigwheel"},
	{needles: []string{"slotmachine"}, bucket: "slots"},
	{needles: []string{"blackjack", "cardtable"}, bucket: "blackjack"},
	{needles: []string{"poker"}, bucket: "poker"},
}

// ApparatusKind resolves a world-object prefab to a gambling apparatus kind.
func ApparatusKind(prefab string) (string, bool) {
	return matchRules(apparatusRules, prefab)
}

// WeaponKey names a weapon for kills.weapon.* counters: the item shortname
// when the host reports one, otherwise a name derived from the prefab path.
func WeaponKey(item, prefab string) string {
	if k := strings.ToLower(strings.TrimSpace(item)); k != "" {
		return k
	}
	p := strings.ToLower(strings.TrimSpace(prefab))
	if p == "" {
		return ""
	}
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		p = p[i+1:]
	}
	p = strings.TrimSuffix(p, ".prefab")
	p = strings.TrimSuffix(p, ".entity")
	return p
}
