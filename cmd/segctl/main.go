// Command segctl replays allocation traces against the segregated-list
// allocator and inspects the resulting heap.
package main

func main() {
	execute()
}
