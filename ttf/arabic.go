package ttf

// arabicIsolated maps basic Arabic letters to their isolated presentation
// forms (Arabic Presentation Forms-A and -B).
var arabicIsolated = map[rune]rune{
	0x0621: 0xfe80, // hamza
	0x0622: 0xfe81, // alef with madda above
	0x0623: 0xfe83, // alef with hamza above
	0x0624: 0xfe85, // waw with hamza above
	0x0625: 0xfe87, // alef with hamza below
	0x0626: 0xfe89, // yeh with hamza above
	0x0627: 0xfe8d, // alef
	0x0628: 0xfe8f, // beh
	0x0629: 0xfe93, // teh marbuta
	0x062a: 0xfe95, // teh
	0x062b: 0xfe99, // theh
	0x062c: 0xfe9d, // jeem
	0x062d: 0xfea1, // hah
	0x062e: 0xfea5, // khah
	0x062f: 0xfea9, // dal
	0x0630: 0xfeab, // thal
	0x0631: 0xfead, // reh
	0x0632: 0xfeaf, // zain
	0x0633: 0xfeb1, // seen
	0x0634: 0xfeb5, // sheen
	0x0635: 0xfeb9, // sad
	0x0636: 0xfebd, // dad
	0x0637: 0xfec1, // tah
	0x0638: 0xfec5, // zah
	0x0639: 0xfec9, // ain
	0x063a: 0xfecd, // ghain
	0x0641: 0xfed1, // feh
	0x0642: 0xfed5, // qaf
	0x0643: 0xfed9, // kaf
	0x0644: 0xfedd, // lam
	0x0645: 0xfee1, // meem
	0x0646: 0xfee5, // noon
	0x0647: 0xfee9, // heh
	0x0648: 0xfeed, // waw
	0x0649: 0xfeef, // alef maksura
	0x064a: 0xfef1, // yeh
	0x067e: 0xfb56, // peh
	0x0686: 0xfb7a, // tcheh
	0x0698: 0xfb8a, // jeh
	0x06a9: 0xfb8e, // keheh
	0x06af: 0xfb92, // gaf
	0x06cc: 0xfbfc, // farsi yeh
}
