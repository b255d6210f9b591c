// Package history provides the fixed editorial context shown for each decade.
package history

// Placeholder texts shown when no decade is clicked or a decade has no entry.
const (
	PromptText  = "Click a decade button to see historical context."
	MissingText = "No context added yet for this decade."
)

var contexts = map[int]string{
	1890: "Late 19th century: Universities were formalizing traditions, including fight songs, mascots, and sporting events. College culture emphasized classical education, discipline, and the beginnings of organized football programs.",
	1900: "Progressive Era in the United States: Reform movements sought to address social issues like labor conditions, women's suffrage, and education. College life grew more structured, and intercollegiate sports became increasingly popular. The 'Men' trope reaches a global maximum in this decade and quickly declines in following years, which is indicative of changes in gender norms.",
	1910: "World War I period: Global tensions and the outbreak of war influenced American society. Colleges contributed to military training, and patriotic themes became common in student life and song lyrics, which illustrates how the 'Fight' trope is on the rise.",
	1920: "Roaring Twenties: Economic prosperity and cultural dynamism characterized the decade. Jazz, flappers, and new forms of entertainment emerged, and college campuses embraced spirited events, football, and lively social traditions.",
	1930: "Great Depression: Economic hardship shaped everyday life. Despite financial challenges, colleges maintained traditions, with fight songs often reflecting resilience and community pride in difficult times. All songs use the 'Fight' trope here.",
	1940: "World War II: American involvement affected campus populations as many students joined the military. College events, songs, and sports often incorporated patriotic themes, morale-building, and support for the war effort.",
	1950: "Post-war boom and Cold War beginnings: Returning veterans fueled campus growth through the GI Bill. Colleges expanded, football and other sports flourished, and societal optimism mixed with the tension of emerging Cold War politics. The 'Fight' and 'Victory' tropes fall while the use of opponents in fight songs starts to rise.",
	1960: "Civil Rights Movement and social change: Activism and social justice influenced campuses nationwide. Music, including fight songs and student performances, reflected changing attitudes, while traditional college traditions coexisted with broader societal transformation.",
}

// Lookup returns the context text for decade.
func Lookup(decade int) (string, bool) {
	text, ok := contexts[decade]
	return text, ok
}

// Text returns the context text for decade, or MissingText.
func Text(decade int) string {
	if text, ok := contexts[decade]; ok {
		return text
	}
	return MissingText
}

// Decades lists the decades that have context, ascending.
func Decades() []int {
	return []int{1890, 1900, 1910, 1920, 1930, 1940, 1950, 1960}
}
