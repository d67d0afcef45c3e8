package storetest

import (
	"github.com/quranhub/quranhub/core/narration"
	"github.com/quranhub/quranhub/internal/model"
	"github.com/quranhub/quranhub/internal/store"
)

// Arabic fixtures for surah 1 (al-Fatiha), simple script.
var fatihaText = []string{
	"بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ",
	"الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ",
	"الرَّحْمَٰنِ الرَّحِيمِ",
	"مَالِكِ يَوْمِ الدِّينِ",
	"إِيَّاكَ نَعْبُدُ وَإِيَّاكَ نَسْتَعِينُ",
	"اهْدِنَا الصِّرَاطَ الْمُسْتَقِيمَ",
	"صِرَاطَ الَّذِينَ أَنْعَمْتَ عَلَيْهِمْ غَيْرِ الْمَغْضُوبِ عَلَيْهِمْ وَلَا الضَّالِّينَ",
}

// Clean-script (no tashkil) rendering of the same verses.
var fatihaClean = []string{
	"بسم الله الرحمن الرحيم",
	"الحمد لله رب العالمين",
	"الرحمن الرحيم",
	"مالك يوم الدين",
	"اياك نعبد واياك نستعين",
	"اهدنا الصراط المستقيم",
	"صراط الذين انعمت عليهم غير المغضوب عليهم ولا الضالين",
}

var fatihaEnglish = []string{
	"In the name of Allah, the Entirely Merciful, the Especially Merciful",
	"All praise is due to Allah, Lord of the worlds",
	"The Entirely Merciful, the Especially Merciful",
	"Sovereign of the Day of Recompense",
	"It is You we worship and You we ask for help",
	"Guide us to the straight path",
	"The path of those upon whom You have bestowed favor, not of those who have evoked Your anger or of those who are astray",
}

func fatihaAyahs(text []string) []model.Ayah {
	out := make([]model.Ayah, len(text))
	for i := range text {
		out[i] = model.Ayah{
			Number:        i + 1,
			Text:          text[i],
			SurahNumber:   1,
			NumberInSurah: i + 1,
			Juz:           1,
			Manzil:        1,
			Page:          1,
			Ruku:          1,
			Hizb:          1,
			HizbQuarter:   1,
		}
	}
	return out
}

// Fixture builds a store seeded with the deterministic test data shared
// across the service tests: surah 1 complete in four text editions, ayah
// 2:255, a sajdah verse, the Warsh numbering rows for surah 1, a
// duplicated audio identifier, words for 1:1, one similar-verse match and
// one phrase occurrence.
func Fixture() *Store {
	s := New()

	s.SurahList = []model.Surah{
		{Number: 1, Name: "سُورَةُ ٱلْفَاتِحَةِ", EnglishName: "Al-Faatiha", EnglishNameTranslation: "The Opening", RevelationType: "Meccan", NumberOfAyahs: 7, RevelationOrder: 5},
		{Number: 2, Name: "سُورَةُ البَقَرَةِ", EnglishName: "Al-Baqara", EnglishNameTranslation: "The Cow", RevelationType: "Medinan", NumberOfAyahs: 286, RevelationOrder: 87},
		{Number: 32, Name: "سُورَةُ السَّجْدَةِ", EnglishName: "As-Sajda", EnglishNameTranslation: "The Prostration", RevelationType: "Meccan", NumberOfAyahs: 30, RevelationOrder: 75},
		{Number: 114, Name: "سُورَةُ النَّاسِ", EnglishName: "An-Naas", EnglishNameTranslation: "Mankind", RevelationType: "Meccan", NumberOfAyahs: 6, RevelationOrder: 21},
	}

	s.EditionList = []model.Edition{
		{Identifier: "quran-simple", Language: "ar", Name: "القرآن الكريم المبسط", EnglishName: "Simple", Format: model.FormatText, Type: model.TypeQuran, Direction: "rtl"},
		{Identifier: "quran-simple-clean", Language: "ar", Name: "القرآن الكريم المبسط (بدون تشكيل)", EnglishName: "Simple Clean", Format: model.FormatText, Type: model.TypeQuran, Direction: "rtl"},
		{Identifier: "quran-warsh", Language: "ar", Name: "رواية ورش عن نافع", EnglishName: "Warsh", Format: model.FormatText, Type: model.TypeNarration, Direction: "rtl"},
		{Identifier: "en.sahih", Language: "en", Name: "Saheeh International", EnglishName: "Saheeh International", Format: model.FormatText, Type: model.TypeTranslation, Direction: "ltr"},
		{Identifier: "ar.abdullahbasfar.hafs", Language: "ar", Name: "عبد الله بصفر", EnglishName: "Abdullah Basfar", Format: model.FormatAudio, Type: model.TypeVersebyverse, NarratorIdentifier: "quran-simple", Bitrates: []int{192, 128, 64}, ReciterID: 1},
		{Identifier: "ar.abdullahbasfar.hafs", Language: "ar", Name: "عبد الله بصفر", EnglishName: "Abdullah Basfar", Format: model.FormatAudio, Type: model.TypeSurah, NarratorIdentifier: "quran-simple", Bitrates: []int{128}, ReciterID: 1},
		{Identifier: "ar.sahlyahya.warsh", Language: "ar", Name: "سهل يحيى", EnglishName: "Sahl Yahya", Format: model.FormatAudio, Type: model.TypeVersebyverse, NarratorIdentifier: "quran-warsh", Bitrates: []int{64}, ReciterID: 2},
		{Identifier: "ar.orphanaudio", Language: "ar", Name: "orphan", EnglishName: "Orphan", Format: model.FormatAudio, Type: model.TypeVersebyverse, NarratorIdentifier: "quran-ghost", Bitrates: []int{32}, ReciterID: 3},
	}

	kursi := model.Ayah{
		Number: 262, SurahNumber: 2, NumberInSurah: 255,
		Juz: 3, Manzil: 1, Page: 42, Ruku: 35, Hizb: 5, HizbQuarter: 17,
		Text: "اللَّهُ لَا إِلَٰهَ إِلَّا هُوَ الْحَيُّ الْقَيُّومُ",
	}
	sajdaVerse := model.Ayah{
		Number: 3520, SurahNumber: 32, NumberInSurah: 15,
		Juz: 21, Manzil: 5, Page: 416, Ruku: 371, Hizb: 42, HizbQuarter: 166,
		Text: "إِنَّمَا يُؤْمِنُ بِآيَاتِنَا الَّذِينَ إِذَا ذُكِّرُوا بِهَا خَرُّوا سُجَّدًا",
		Sajda: model.Sajda{Mark: &model.SajdahMark{ID: 9, Recommended: false, Obligatory: true}},
	}

	simple := fatihaAyahs(fatihaText)
	simple = append(simple, kursi, sajdaVerse)
	s.AyahsByEd["quran-simple"] = simple

	clean := fatihaAyahs(fatihaClean)
	kursiClean := kursi
	kursiClean.Text = "الله لا اله الا هو الحي القيوم"
	s.AyahsByEd["quran-simple-clean"] = append(clean, kursiClean)

	s.AyahsByEd["en.sahih"] = append(fatihaAyahs(fatihaEnglish), model.Ayah{
		Number: 262, SurahNumber: 2, NumberInSurah: 255,
		Juz: 3, Manzil: 1, Page: 42, Ruku: 35, Hizb: 5, HizbQuarter: 17,
		Text: "Allah - there is no deity except Him, the Ever-Living, the Sustainer of existence",
	})

	// Warsh fatiha: the basmala is not counted, hafs 7 splits in two.
	warsh := fatihaAyahs([]string{
		fatihaText[1], fatihaText[2], fatihaText[3], fatihaText[4], fatihaText[5],
		"صِرَاطَ الَّذِينَ أَنْعَمْتَ عَلَيْهِمْ",
		"غَيْرِ الْمَغْضُوبِ عَلَيْهِمْ وَلَا الضَّالِّينَ",
	})
	// Global numbers are edition-specific; warsh continues its own count.
	kursiWarsh := kursi
	kursiWarsh.Number = 8
	s.AyahsByEd["quran-warsh"] = append(warsh, kursiWarsh)

	s.Rows[1] = []narration.Row{
		{Surah: 1, Hafs: []int{1, 2}, Warsh: []int{1}},
		{Surah: 1, Hafs: []int{3}, Warsh: []int{2}},
		{Surah: 1, Hafs: []int{4}, Warsh: []int{3}},
		{Surah: 1, Hafs: []int{5}, Warsh: []int{4}},
		{Surah: 1, Hafs: []int{6}, Warsh: []int{5}},
		{Surah: 1, Hafs: []int{7}, Warsh: []int{6, 7}},
	}

	basmala := []string{"بِسْمِ", "اللَّهِ", "الرَّحْمَٰنِ", "الرَّحِيمِ"}
	for i, w := range basmala {
		s.WordList = append(s.WordList, model.Word{
			Surah: 1, AyahInSurah: 1, Position: i + 1, Text: w,
			LineNumber: 2, Page: 1, Tajweed: "<rule class=ghunnah>" + w + "</rule>",
		})
	}
	hamd := []string{"الْحَمْدُ", "لِلَّهِ", "رَبِّ", "الْعَالَمِينَ"}
	for i, w := range hamd {
		s.WordList = append(s.WordList, model.Word{
			Surah: 1, AyahInSurah: 2, Position: i + 1, Text: w,
			LineNumber: 3, Page: 1,
		})
	}

	// Hafs 1:7 spans two printed lines; its material covers two Warsh
	// verses, exercising the split-class position continuation.
	seven := []string{"صِرَاطَ", "الَّذِينَ", "أَنْعَمْتَ", "عَلَيْهِمْ", "غَيْرِ", "الْمَغْضُوبِ", "عَلَيْهِمْ", "وَلَا", "الضَّالِّينَ"}
	for i, w := range seven {
		line := 7
		if i >= 4 {
			line = 8
		}
		s.WordList = append(s.WordList, model.Word{
			Surah: 1, AyahInSurah: 7, Position: i + 1, Text: w,
			LineNumber: line, Page: 1,
		})
	}

	kursiHead := []string{"اللَّهُ", "لَا", "إِلَٰهَ", "إِلَّا", "هُوَ"}
	for i, w := range kursiHead {
		s.WordList = append(s.WordList, model.Word{
			Surah: 2, AyahInSurah: 255, Position: i + 1, Text: w,
			LineNumber: 5, Page: 42,
		})
	}

	s.Matches = []model.AyahMatch{
		{ID: 1, SourceSurah: 1, SourceAyah: 2, MatchedSurah: 2, MatchedAyah: 255, Score: 0.82, Coverage: 0.5, MatchedWordCount: 2},
	}
	s.Spans = []model.MatchSpan{{MatchID: 1, MatchedStart: 1, MatchedEnd: 2}}

	s.Phrases[1] = model.Phrase{ID: 1, SourceSurah: 1, SourceAyah: 2, StartPos: 1, EndPos: 2}
	s.Occurrences = []model.PhraseOccurrence{
		{PhraseID: 1, Surah: 1, AyahInSurah: 2, StartPos: 1, EndPos: 2},
	}

	s.ThemeList = []model.Theme{{ID: 1, Name: "Mercy", Keywords: []string{"رحمة", "mercy"}}}
	s.ThemeLinks[[2]int{1, 1}] = []int64{1}

	s.Layouts = []model.MushafLayout{{ID: 1, Name: "madani-15", LinesPerPage: 15, TotalPages: 604}}
	s.Lines = []model.MushafLine{
		{LayoutID: 1, Page: 1, Line: 1, LineType: "surah_name", IsCentered: true, SurahNumber: 1},
		{LayoutID: 1, Page: 1, Line: 2, LineType: "ayah", IsCentered: true, FirstWordID: 1, LastWordID: 4},
	}

	s.FontList = []model.Font{{ID: 1, Name: "KFGQPC Uthmanic Script HAFS", Category: "mushaf"}}
	s.FontFileMap[1] = []model.FontFile{{FontID: 1, Format: "woff2", URL: "https://quranhub.b-cdn.net/quran/fonts/hafs.woff2"}}
	s.PageFiles["1/1"] = model.FontPageFile{FontID: 1, Page: 1, URL: "https://quranhub.b-cdn.net/quran/fonts/hafs/p1.woff2"}

	return s
}

// Interface check.
var _ store.Store = (*Store)(nil)
