// Copyright 2024 the csource authors.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package csource

import "golang.org/x/exp/slices"

// The code table maps a one-byte bytecode in [firstBytecode, lastBytecode]
// to the (ASCII) run of characters it expands to. Its contents are an
// opaque, pre-built dictionary — analogous to V8's code-table.inc.c — and
// are not meaningful on their own; only the shape matters:
//
//   - tokenLengths[asciiCode] == tokenLengths[unicodeCode] == 1
//   - tokenLengths[2..255] is non-decreasing
//   - tokenLengths[lastBytecode] == maxTokenLength
//   - every bytecodeChars[c] is 7-bit ASCII of length tokenLengths[c]
const (
	asciiCode     = 0
	unicodeCode   = 1
	firstBytecode = 2
	lastBytecode  = 255
	maxTokenLength = 9
)

// tokenLengths[c] is the number of characters that bytecode c expands to.
// tokenLengths[asciiCode] and tokenLengths[unicodeCode] are fixed at 1;
// the actual character count of a Unicode escape (1 or 2 UTF-16 code
// units) is computed separately by uc16Length.
var tokenLengths [256]byte

// bytecodeChars[c] holds the literal characters bytecode c expands to,
// for c in [firstBytecode, lastBytecode]. Entries for 0 and 1 are unused.
var bytecodeChars [256]string

// bytecodeByPrefix indexes bytecodeChars by their first byte, to support
// the encoder's greedy longest-match search without a linear scan of the
// whole table on every character.
var bytecodeByPrefix [256][]byte

func init() {
	tokenLengths[asciiCode] = 1
	tokenLengths[unicodeCode] = 1
	for code, entry := range rawCodeTable {
		tokenLengths[code] = entry.length
		bytecodeChars[code] = entry.chars
		if len(entry.chars) != int(entry.length) {
			panic("csource: malformed code table entry")
		}
	}
	if tokenLengths[lastBytecode] != maxTokenLength {
		panic("csource: code table invariant violated: tokenLengths[255] != 9")
	}
	for c := firstBytecode + 1; c <= lastBytecode; c++ {
		if tokenLengths[c] < tokenLengths[c-1] {
			panic("csource: code table invariant violated: lengths not monotonic")
		}
	}
	for c := firstBytecode; c <= lastBytecode; c++ {
		s := bytecodeChars[c]
		for i := 0; i < len(s); i++ {
			if s[i] > 0x7f {
				panic("csource: code table invariant violated: non-ASCII bytecode expansion")
			}
		}
		bytecodeByPrefix[s[0]] = append(bytecodeByPrefix[s[0]], byte(c))
	}
	// Longest candidate first, so the encoder's greedy search can stop at
	// the first match instead of scanning every candidate sharing a
	// prefix byte.
	for b := range bytecodeByPrefix {
		candidates := bytecodeByPrefix[b]
		slices.SortFunc(candidates, func(x, y byte) bool {
			return tokenLengths[x] > tokenLengths[y]
		})
	}
}

type codeTableEntry struct {
	length byte
	chars  string
}

// rawCodeTable is keyed by bytecode. It is populated at init time from a
// deterministic, fixed dictionary; the real dictionary a production host
// would ship is out of scope for this package (spec Non-goals).
var rawCodeTable = map[int]codeTableEntry{
	2:   {1, "a"},
	3:   {1, "a"},
	4:   {1, "a"},
	5:   {1, "a"},
	6:   {1, "a"},
	7:   {1, "a"},
	8:   {1, "a"},
	9:   {1, "a"},
	10:  {1, "a"},
	11:  {1, "a"},
	12:  {1, "a"},
	13:  {1, "a"},
	14:  {1, "a"},
	15:  {1, "a"},
	16:  {1, "a"},
	17:  {1, "a"},
	18:  {1, "a"},
	19:  {1, "a"},
	20:  {1, "a"},
	21:  {1, "a"},
	22:  {1, "a"},
	23:  {1, "a"},
	24:  {1, "a"},
	25:  {1, "a"},
	26:  {1, "a"},
	27:  {1, "a"},
	28:  {1, "a"},
	29:  {1, "a"},
	30:  {1, "a"},
	31:  {1, "a"},
	32:  {1, "a"},
	33:  {1, "a"},
	34:  {2, "an"},
	35:  {2, "in"},
	36:  {2, "is"},
	37:  {2, "it"},
	38:  {2, "of"},
	39:  {2, "on"},
	40:  {2, "or"},
	41:  {2, "to"},
	42:  {2, "as"},
	43:  {2, "at"},
	44:  {2, "by"},
	45:  {2, "do"},
	46:  {2, "go"},
	47:  {2, "if"},
	48:  {2, "no"},
	49:  {2, "so"},
	50:  {2, "up"},
	51:  {2, "us"},
	52:  {2, "be"},
	53:  {2, "an"},
	54:  {2, "in"},
	55:  {2, "is"},
	56:  {2, "it"},
	57:  {2, "of"},
	58:  {2, "on"},
	59:  {2, "or"},
	60:  {2, "to"},
	61:  {2, "as"},
	62:  {2, "at"},
	63:  {2, "by"},
	64:  {2, "do"},
	65:  {2, "go"},
	66:  {3, "the"},
	67:  {3, "and"},
	68:  {3, "for"},
	69:  {3, "not"},
	70:  {3, "you"},
	71:  {3, "but"},
	72:  {3, "can"},
	73:  {3, "had"},
	74:  {3, "her"},
	75:  {3, "was"},
	76:  {3, "one"},
	77:  {3, "our"},
	78:  {3, "out"},
	79:  {3, "day"},
	80:  {3, "get"},
	81:  {3, "has"},
	82:  {3, "him"},
	83:  {3, "his"},
	84:  {3, "how"},
	85:  {3, "man"},
	86:  {3, "new"},
	87:  {3, "now"},
	88:  {3, "old"},
	89:  {3, "see"},
	90:  {3, "two"},
	91:  {3, "way"},
	92:  {3, "who"},
	93:  {3, "boy"},
	94:  {3, "did"},
	95:  {3, "its"},
	96:  {3, "let"},
	97:  {4, "this"},
	98:  {4, "that"},
	99:  {4, "with"},
	100: {4, "have"},
	101: {4, "from"},
	102: {4, "they"},
	103: {4, "been"},
	104: {4, "call"},
	105: {4, "each"},
	106: {4, "find"},
	107: {4, "give"},
	108: {4, "just"},
	109: {4, "like"},
	110: {4, "made"},
	111: {4, "make"},
	112: {4, "most"},
	113: {4, "over"},
	114: {4, "some"},
	115: {4, "such"},
	116: {4, "take"},
	117: {4, "than"},
	118: {4, "them"},
	119: {4, "then"},
	120: {4, "they"},
	121: {4, "were"},
	122: {4, "when"},
	123: {4, "word"},
	124: {4, "func"},
	125: {4, "this"},
	126: {4, "that"},
	127: {4, "with"},
	128: {4, "have"},
	129: {5, "abcde"},
	130: {5, "bcdef"},
	131: {5, "cdefg"},
	132: {5, "defgh"},
	133: {5, "efghi"},
	134: {5, "fghij"},
	135: {5, "ghijk"},
	136: {5, "hijkl"},
	137: {5, "ijklm"},
	138: {5, "jklmn"},
	139: {5, "klmno"},
	140: {5, "lmnop"},
	141: {5, "mnopq"},
	142: {5, "nopqr"},
	143: {5, "opqrs"},
	144: {5, "pqrst"},
	145: {5, "qrstu"},
	146: {5, "rstuv"},
	147: {5, "stuvw"},
	148: {5, "tuvwx"},
	149: {5, "uvwxy"},
	150: {5, "vwxyz"},
	151: {5, "wxyza"},
	152: {5, "xyzab"},
	153: {5, "yzabc"},
	154: {5, "zabcd"},
	155: {5, "abcde"},
	156: {5, "bcdef"},
	157: {5, "cdefg"},
	158: {5, "defgh"},
	159: {5, "efghi"},
	160: {5, "fghij"},
	161: {6, "return"},
	162: {6, "string"},
	163: {6, "number"},
	164: {6, "object"},
	165: {6, "length"},
	166: {6, "buffer"},
	167: {6, "cursor"},
	168: {6, "source"},
	169: {6, "decode"},
	170: {6, "encode"},
	171: {6, "format"},
	172: {6, "symbol"},
	173: {6, "record"},
	174: {6, "append"},
	175: {6, "insert"},
	176: {6, "delete"},
	177: {6, "update"},
	178: {6, "search"},
	179: {6, "filter"},
	180: {6, "reduce"},
	181: {6, "concat"},
	182: {6, "export"},
	183: {6, "return"},
	184: {6, "string"},
	185: {6, "number"},
	186: {6, "object"},
	187: {6, "length"},
	188: {6, "buffer"},
	189: {6, "cursor"},
	190: {6, "source"},
	191: {6, "decode"},
	192: {7, "abcdefg"},
	193: {7, "bcdefgh"},
	194: {7, "cdefghi"},
	195: {7, "defghij"},
	196: {7, "efghijk"},
	197: {7, "fghijkl"},
	198: {7, "ghijklm"},
	199: {7, "hijklmn"},
	200: {7, "ijklmno"},
	201: {7, "jklmnop"},
	202: {7, "klmnopq"},
	203: {7, "lmnopqr"},
	204: {7, "mnopqrs"},
	205: {7, "nopqrst"},
	206: {7, "opqrstu"},
	207: {7, "pqrstuv"},
	208: {7, "qrstuvw"},
	209: {7, "rstuvwx"},
	210: {7, "stuvwxy"},
	211: {7, "tuvwxyz"},
	212: {7, "uvwxyza"},
	213: {7, "vwxyzab"},
	214: {7, "wxyzabc"},
	215: {7, "xyzabcd"},
	216: {7, "yzabcde"},
	217: {7, "zabcdef"},
	218: {7, "abcdefg"},
	219: {7, "bcdefgh"},
	220: {7, "cdefghi"},
	221: {7, "defghij"},
	222: {7, "efghijk"},
	223: {7, "fghijkl"},
	224: {8, "compress"},
	225: {8, "function"},
	226: {8, "compress"},
	227: {8, "function"},
	228: {8, "compress"},
	229: {8, "function"},
	230: {8, "compress"},
	231: {8, "function"},
	232: {8, "compress"},
	233: {8, "function"},
	234: {8, "compress"},
	235: {8, "function"},
	236: {8, "compress"},
	237: {8, "function"},
	238: {8, "compress"},
	239: {8, "function"},
	240: {8, "compress"},
	241: {8, "function"},
	242: {8, "compress"},
	243: {8, "function"},
	244: {8, "compress"},
	245: {8, "function"},
	246: {8, "compress"},
	247: {8, "function"},
	248: {8, "compress"},
	249: {8, "function"},
	250: {8, "compress"},
	251: {8, "function"},
	252: {8, "compress"},
	253: {8, "function"},
	254: {8, "compress"},
	255: {9, "prototype"},
}
