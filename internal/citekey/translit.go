package citekey

// diacriticBase maps lowercase Latin letters with diacritics to their
// base ASCII letter. Covers Latin-1 Supplement and the common Latin
// Extended-A letters seen in author names. Input runes are lowercased
// before lookup.
var diacriticBase = map[rune]rune{
	// a
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a',
	'ā': 'a', 'ă': 'a', 'ą': 'a',
	// c
	'ç': 'c', 'ć': 'c', 'ĉ': 'c', 'ċ': 'c', 'č': 'c',
	// d
	'ď': 'd',
	// e
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'ē': 'e', 'ĕ': 'e', 'ė': 'e', 'ę': 'e', 'ě': 'e',
	// g
	'ĝ': 'g', 'ğ': 'g', 'ġ': 'g', 'ģ': 'g',
	// h
	'ĥ': 'h',
	// i
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ĩ': 'i', 'ī': 'i', 'ĭ': 'i', 'į': 'i',
	// j
	'ĵ': 'j',
	// k
	'ķ': 'k',
	// l
	'ĺ': 'l', 'ļ': 'l', 'ľ': 'l',
	// n
	'ñ': 'n', 'ń': 'n', 'ņ': 'n', 'ň': 'n',
	// o
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ō': 'o', 'ŏ': 'o', 'ő': 'o',
	// r
	'ŕ': 'r', 'ŗ': 'r', 'ř': 'r',
	// s
	'ś': 's', 'ŝ': 's', 'ş': 's', 'š': 's',
	// t
	'ţ': 't', 'ť': 't',
	// u
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
	'ũ': 'u', 'ū': 'u', 'ŭ': 'u', 'ů': 'u', 'ű': 'u', 'ų': 'u',
	// w
	'ŵ': 'w',
	// y
	'ý': 'y', 'ÿ': 'y', 'ŷ': 'y',
	// z
	'ź': 'z', 'ż': 'z', 'ž': 'z',
}
