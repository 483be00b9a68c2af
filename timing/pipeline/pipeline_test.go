package pipeline_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/urisc/asm"
	"github.com/sarchlab/urisc/emu"
	"github.com/sarchlab/urisc/timing/pipeline"
)

func loadSource(memory *emu.Memory, source string) {
	prog, err := asm.Assemble(source)
	ExpectWithOffset(1, err).NotTo(HaveOccurred())
	ExpectWithOffset(1, memory.LoadProgram(prog.Listing())).To(Succeed())
}

var _ = Describe("Pipeline", func() {
	var (
		regFile *emu.RegFile
		memory  *emu.Memory
		pipe    *pipeline.Pipeline
	)

	BeforeEach(func() {
		regFile = &emu.RegFile{}
		memory = emu.NewMemory()
		pipe = pipeline.NewPipeline(regFile, memory)
	})

	run := func() int {
		cycles, err := pipe.Run(1000)
		ExpectWithOffset(1, err).NotTo(HaveOccurred())
		return cycles
	}

	Describe("NewPipeline", func() {
		It("should start at the program segment with empty latches", func() {
			Expect(pipe.PC()).To(Equal(uint32(0x80)))
			Expect(pipe.Registers()).To(Equal(pipeline.Snapshot{}))
			Expect(pipe.IsRunning()).To(BeFalse())
		})
	})

	Describe("Step", func() {
		It("should fetch into IF/ID and advance PC", func() {
			loadSource(memory, "addi x1, x0, 5")

			pc, err := pipe.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(pc).To(Equal(uint32(0x84)))

			latches := pipe.Registers()
			Expect(latches.IFID).To(Equal(pipeline.IFIDRegister{
				IR: 0x00500093, NPC: 0x84, PC: 0x80,
			}))
		})

		It("should complete an instruction after five cycles", func() {
			loadSource(memory, "addi x1, x0, 5")

			for i := 0; i < 4; i++ {
				_, _ = pipe.Step()
			}
			Expect(regFile.ReadReg(1)).To(Equal(uint32(0)))

			_, _ = pipe.Step()
			Expect(regFile.ReadReg(1)).To(Equal(uint32(5)))
			Expect(pipe.Stats().Instructions).To(Equal(uint64(1)))
		})

		It("should add independent results", func() {
			loadSource(memory, `
				addi x1, x0, 5
				addi x2, x0, 3
				add x3, x1, x2
			`)
			run()
			Expect(regFile.ReadReg(3)).To(Equal(uint32(8)))
		})

		It("should wrap subtraction at 32 bits", func() {
			loadSource(memory, `
				addi x1, x0, 1
				sub x2, x0, x1
			`)
			run()
			Expect(regFile.ReadReg(2)).To(Equal(uint32(0xFFFFFFFF)))
		})

		It("should never write x0", func() {
			loadSource(memory, "addi x0, x0, 9\nadd x1, x0, x0")
			run()
			Expect(regFile.ReadReg(0)).To(Equal(uint32(0)))
			Expect(regFile.ReadReg(1)).To(Equal(uint32(0)))
		})
	})

	Describe("data hazards", func() {
		It("should stall a dependent instruction until the value is written", func() {
			loadSource(memory, "addi x1, x0, 5\naddi x2, x1, 1")

			for i := 0; i < 7; i++ {
				_, err := pipe.Step()
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(regFile.ReadReg(1)).To(Equal(uint32(5)))
			Expect(regFile.ReadReg(2)).To(Equal(uint32(0)))

			_, _ = pipe.Step()
			Expect(regFile.ReadReg(2)).To(Equal(uint32(6)))
			Expect(pipe.Stats().Stalls).To(Equal(uint64(2)))
		})

		It("should hold IF/ID and PC and insert a bubble while stalled", func() {
			loadSource(memory, "addi x1, x0, 5\naddi x2, x1, 1")

			_, _ = pipe.Step()
			_, _ = pipe.Step()
			held := pipe.Registers().IFID

			var infos []pipeline.CycleInfo
			pipe = pipeline.NewPipeline(regFile, memory,
				pipeline.WithCycleHook(func(info pipeline.CycleInfo) {
					infos = append(infos, info)
				}))
			for i := 0; i < 4; i++ {
				_, _ = pipe.Step()
			}

			Expect(infos[2].Stalled).To(BeTrue())
			Expect(infos[2].StallReg).To(Equal(uint8(1)))
			Expect(infos[2].PC).To(Equal(uint32(0x88)))
			Expect(infos[2].Latches.IFID).To(Equal(held))
			Expect(infos[2].Latches.IDEX).To(Equal(pipeline.IDEXRegister{}))

			Expect(infos[3].Stalled).To(BeTrue())
			Expect(infos[3].Latches.IFID).To(Equal(held))
		})

		It("should not stall on independent instructions", func() {
			loadSource(memory, `
				addi x1, x0, 1
				addi x2, x0, 2
				addi x3, x0, 3
				addi x4, x0, 4
			`)
			run()
			Expect(pipe.Stats().Stalls).To(Equal(uint64(0)))
			Expect(regFile.ReadReg(4)).To(Equal(uint32(4)))
		})

		It("should stall on the store value register", func() {
			loadSource(memory, `
				addi x1, x0, 0x2A
				sw x1, 8(x0)
				lw x2, 8(x0)
			`)
			run()
			Expect(pipe.Stats().Stalls).To(Equal(uint64(2)))
			Expect(memory.LoadWord(8)).To(Equal(uint32(42)))
			Expect(regFile.ReadReg(2)).To(Equal(uint32(42)))
		})

		It("should stall on a load result", func() {
			Expect(memory.StoreWord(0x10, 0x1234)).To(Succeed())
			loadSource(memory, `
				lw x1, 0x10(x0)
				add x2, x1, x1
			`)
			run()
			Expect(regFile.ReadReg(2)).To(Equal(uint32(0x2468)))
		})
	})

	Describe("branches", func() {
		It("should redirect fetch when a beq is taken", func() {
			loadSource(memory, `
				addi x1, x0, 1
				beq x0, x0, skip
				addi x1, x0, 99
			skip:
				addi x2, x0, 7
			`)
			run()
			Expect(regFile.ReadReg(1)).To(Equal(uint32(1)))
			Expect(regFile.ReadReg(2)).To(Equal(uint32(7)))
			Expect(pipe.Stats().BranchesTaken).To(Equal(uint64(1)))
		})

		It("should fall through when a bne is not taken", func() {
			loadSource(memory, `
				bne x0, x0, skip
				addi x1, x0, 99
			skip:
				addi x2, x0, 7
			`)
			run()
			Expect(regFile.ReadReg(1)).To(Equal(uint32(99)))
			Expect(regFile.ReadReg(2)).To(Equal(uint32(7)))
			Expect(pipe.Stats().BranchesTaken).To(Equal(uint64(0)))
		})

		It("should resolve the branch in ID relative to its own address", func() {
			loadSource(memory, `
				beq x0, x0, target
				.word 0
				.word 0
			target:
				addi x1, x0, 1
			`)

			_, _ = pipe.Step()
			pc, _ := pipe.Step()

			Expect(pipe.Registers().IFID.PC).To(Equal(uint32(0x8C)))
			Expect(pc).To(Equal(uint32(0x90)))
		})

		It("should run a counted loop", func() {
			loadSource(memory, `
				addi x2, x0, 3
			loop:
				addi x1, x1, 1
				bne x1, x2, loop
				addi x3, x0, 42
			`)
			run()
			Expect(regFile.ReadReg(1)).To(Equal(uint32(3)))
			Expect(regFile.ReadReg(3)).To(Equal(uint32(42)))
			Expect(pipe.Stats().BranchesTaken).To(Equal(uint64(2)))
		})
	})

	Describe("memory partitioning", func() {
		It("should zero loads and drop stores outside the data segment", func() {
			loadSource(memory, `
				addi x1, x0, 0x7F
				addi x1, x1, 1
				sw x1, 0(x1)
				lw x2, 0x80(x0)
				lw x3, -4(x0)
			`)
			before := memory.ProgramSegment()

			_, err := pipe.Run(1000)
			Expect(err).NotTo(HaveOccurred())

			Expect(regFile.ReadReg(1)).To(Equal(uint32(0x80)))
			Expect(regFile.ReadReg(2)).To(Equal(uint32(0)))
			Expect(regFile.ReadReg(3)).To(Equal(uint32(0)))
			Expect(memory.ProgramSegment()).To(Equal(before))
		})

		It("should fetch zero words outside the program segment", func() {
			pipe.SetPC(0x40)
			Expect(memory.StoreWord(0x40, 0x00500093)).To(Succeed())

			_, err := pipe.Step()
			Expect(err).NotTo(HaveOccurred())
			Expect(pipe.Registers().IFID.IR).To(Equal(uint32(0)))
			Expect(pipe.PC()).To(Equal(uint32(0x44)))
		})
	})

	Describe("Run", func() {
		It("should stop at the cycle budget", func() {
			loadSource(memory, "loop: beq x0, x0, loop")
			cycles, err := pipe.Run(25)
			Expect(err).NotTo(HaveOccurred())
			Expect(cycles).To(Equal(25))
		})

		It("should stop when PC leaves the program segment", func() {
			loadSource(memory, "addi x1, x0, 1")
			cycles := run()
			Expect(cycles).To(Equal(32))
			Expect(pipe.PC()).To(Equal(uint32(0x100)))
		})

		It("should not step outside the program segment", func() {
			pipe.SetPC(0x100)
			Expect(run()).To(Equal(0))
		})

		It("should report running only inside Run", func() {
			var seen []bool
			pipe = pipeline.NewPipeline(regFile, memory,
				pipeline.WithCycleHook(func(pipeline.CycleInfo) {
					seen = append(seen, pipe.IsRunning())
				}))

			_, _ = pipe.Step()
			_, _ = pipe.Run(2)

			Expect(seen).To(Equal([]bool{false, true, true}))
			Expect(pipe.IsRunning()).To(BeFalse())
		})
	})

	Describe("Reset", func() {
		It("should clear latches and statistics but keep state", func() {
			loadSource(memory, "addi x1, x0, 5\naddi x2, x1, 1")
			run()

			pipe.Reset()

			Expect(pipe.PC()).To(Equal(uint32(0x80)))
			Expect(pipe.Registers()).To(Equal(pipeline.Snapshot{}))
			Expect(pipe.Stats()).To(Equal(pipeline.Statistics{}))
			Expect(regFile.ReadReg(2)).To(Equal(uint32(6)))
		})
	})

	Describe("Statistics", func() {
		It("should compute CPI", func() {
			stats := pipeline.Statistics{Cycles: 10, Instructions: 4}
			Expect(stats.CPI()).To(BeNumerically("~", 2.5))
			Expect(pipeline.Statistics{}.CPI()).To(Equal(0.0))
		})
	})
})

var _ = Describe("FaultError", func() {
	It("should match the internal fault and its cause", func() {
		var err error = &pipeline.FaultError{
			PC:    0x84,
			Cycle: 3,
			Err:   &emu.ErrAccess{Addr: 0xFE, Width: 4},
		}

		Expect(errors.Is(err, pipeline.ErrInternalFault)).To(BeTrue())
		Expect(errors.Is(err, emu.ErrOutOfBounds)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("0x84"))
	})
})
