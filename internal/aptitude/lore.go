package aptitude

import "strings"

const windKey = "风"

var lore = map[string]string{
	"天灵根":    "上天宠儿，修炼速度为常人2-3倍，结丹无瓶颈。",
	"隐灵根":    "千年难遇，潜力不逊天灵根，需特殊机遇觉醒。",
	"变异灵根":   "五行异变升华，战力卓绝，可敌数位同阶修士。",
	"真灵根":    "修炼良材，资质上佳，筑基成功率远超常人。",
	"伪灵根":    "资质驳杂，修炼缓慢，需大毅力或奇遇破境。",
	"龙吟之体":   "阴阳失衡，天赋异禀，修炼神速但暗藏凶险。",
	"通玉凤髓之体": "体内自生先天灵气，修炼事半功倍，可辅助他人。",
	"纯阴之体":   "体质极阴，修炼阴寒功法一日千里，需丹药调和。",
	"纯阳之体":   "体质极阳，修炼阳系功法威力巨大，谨防走火入魔。",
	"先天道体":   "天生与道相亲，感悟法则极快，万年难遇之才。",
	"混沌之体":   "包容万物，可修任何功法，仅存于上古传说之中。",
	"凡体":     "根基虽普通，但若心志坚定，亦可凭借勤勉补拙。",
	"灵根未测":   "资质尚待检测，未来道途充满了未知的可能性。",
	windKey:    "身法诡异，速度冠绝，机动性极强，难以捕捉。",
}

// Lore looks up the lore text for a root label, constitution base, or sentinel.
func Lore(key string) (string, bool) {
	text, ok := lore[key]
	return text, ok
}

// Describe picks the card description for a descriptor/constitution pair.
// A notable constitution wins over the root; wind roots have their own text;
// otherwise the root label's lore is used, falling back to the plain-body lore.
func Describe(descriptor, constitution string) string {
	base := constitutionBase(constitution)
	if constitution != "" && !strings.HasPrefix(constitution, DefaultConstitution) {
		if text, ok := lore[base]; ok {
			return text
		}
	}
	if descriptor == "" {
		return lore[Unmeasured]
	}
	if strings.Contains(descriptor, windKey) {
		return lore[windKey]
	}
	if text, ok := lore[strings.Split(descriptor, " ")[0]]; ok {
		return text
	}
	return lore[DefaultConstitution]
}
