package tetromino

// SRS wall-kick tables. A kick is an (x, y) translation tried in order
// when the plain rotation collides; the first offset that fits wins.
// Offsets follow the package convention: +x right, +y down. The tables
// are the Guideline SRS translations (https://tetris.wiki/Super_Rotation_System)
// with the vertical axis flipped to match.
//
// Rotation state indices: 0=spawn, 1=R (one CW), 2=180, 3=L (one CCW).

type rotPair struct {
	from, to int
}

var kicksJLSTZ = map[rotPair][]Offset{
	{0, 1}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{1, 0}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{1, 2}: {{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},
	{2, 1}: {{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},
	{2, 3}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
	{3, 2}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{3, 0}: {{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},
	{0, 3}: {{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},
}

var kicksI = map[rotPair][]Offset{
	{0, 1}: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
	{1, 0}: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
	{1, 2}: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
	{2, 1}: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
	{2, 3}: {{0, 0}, {2, 0}, {-1, 0}, {2, -1}, {-1, 2}},
	{3, 2}: {{0, 0}, {-2, 0}, {1, 0}, {-2, 1}, {1, -2}},
	{3, 0}: {{0, 0}, {1, 0}, {-2, 0}, {1, 2}, {-2, -1}},
	{0, 3}: {{0, 0}, {-1, 0}, {2, 0}, {-1, -2}, {2, 1}},
}

var noKick = []Offset{{0, 0}}

// Kicks returns the kick offsets to try, in order, for rotating kind k
// from rotation state `from` to state `to`. O never kicks; unknown
// transitions (including from==to) test only the identity offset.
func Kicks(k Kind, from, to int) []Offset {
	from = ((from % 4) + 4) % 4
	to = ((to % 4) + 4) % 4

	if from == to || k == KindO {
		return noKick
	}

	if k == KindI {
		if offs, ok := kicksI[rotPair{from, to}]; ok {
			return offs
		}
		return noKick
	}

	if offs, ok := kicksJLSTZ[rotPair{from, to}]; ok {
		return offs
	}
	return noKick
}
