package calendar

// gift is one row of the content table.
type gift struct {
	kind    ContentKind
	content string
}

// gifts is indexed by (id-1) mod len(gifts). With 25 days and 15 gifts,
// days 16..25 repeat days 1..10.
var gifts = []gift{
	{KindText, "Happy first day of Advent! Remember to smile today."},
	{KindText, "A joke: what did one traffic light say to the other? Don't look, I'm changing!"},
	{KindText, "Tip: drink some water and stay hydrated."},
	{KindImage, "https://images.unsplash.com/photo-1512389142860-9c449e58a543?auto=format&fit=crop&w=800&q=80"},
	{KindText, "Quick recipe: **hot chocolate** with marshmallows."},
	{KindText, "Listen to your favourite Christmas song today."},
	{KindLink, "https://www.youtube.com/watch?v=aAkMkVFwAoo"},
	{KindText, "Call a friend you haven't seen in a while."},
	{KindText, "Donate something you no longer use."},
	{KindImage, "https://images.unsplash.com/photo-1543589077-47d81606c1bf?auto=format&fit=crop&w=800&q=80"},
	{KindText, "Write down three things you are grateful for."},
	{KindText, "Draw a Christmas picture."},
	{KindImage, "https://images.unsplash.com/photo-1511268011861-691ed6d995ff?auto=format&fit=crop&w=800&q=80"},
	{KindText, "Watch a Christmas movie."},
	{KindLink, "https://open.spotify.com/playlist/37i9dQZF1DX0Yxoavh5qJV"},
}

// ContentTableSize is the number of distinct gifts before content repeats.
func ContentTableSize() int { return len(gifts) }

func giftFor(id int) gift {
	return gifts[(id-1)%len(gifts)]
}
