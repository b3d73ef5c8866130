// meta/meta.go
package meta

// THREADS defines the number of playout goroutines.
const THREADS = 2

// MEMORY_MB defines the transposition table budget in megabytes.
const MEMORY_MB = 1024

// MSEC_PER_MOVE defines the thinking time per move when no clock is known.
const MSEC_PER_MOVE = 1000

// WIDTH defines the default board width.
const WIDTH = 19

// KOMI defines the default compensation for white.
const KOMI = 7.5

// GESTATION defines the runs a move needs before its position gets a tree node.
const GESTATION = 4

// BIAS_DELAY defines the runs a node needs before the heuristics bias it.
const BIAS_DELAY = 800

// SHAPE_SCALING_FACTOR defines the decay of the shape table's moving average.
const SHAPE_SCALING_FACTOR = 0.95

// SHAPE_BIAS defines the prior runs given by the shape rater.
const SHAPE_BIAS = 20

// SHAPE_MIN_STONES defines how many stones a shape must contain.
const SHAPE_MIN_STONES = 5

// DEAD_STONE_RUNS defines the playouts used to decide which stones are dead.
const DEAD_STONE_RUNS = 100

// BOOK_MOVES defines how many opening moves the book covers.
const BOOK_MOVES = 12

// BOOK_COUNT_THRESHOLD defines how often a reply must be seen to enter the book.
const BOOK_COUNT_THRESHOLD = 2
