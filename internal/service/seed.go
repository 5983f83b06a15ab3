package service

// starterPrompts is the fixed set inserted on first use of an empty store.
var starterPrompts = [][2]string{
	{"be able to fly for a day", "turn invisible for a day"},
	{"eat pancakes for dinner", "eat pizza for breakfast"},
	{"have a pet dinosaur", "have a pet dragon"},
	{"swim with dolphins", "camp under the stars"},
	{"build a giant pillow fort", "have a massive water balloon fight"},
	{"never do homework again", "never do chores again"},
}
